package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/provide-io/jpackfx/pkg/archive"
	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/provide-io/jpackfx/pkg/packager"
	"github.com/provide-io/jpackfx/pkg/process"
	"github.com/provide-io/jpackfx/pkg/project"
	"github.com/provide-io/jpackfx/pkg/workspace"
	"github.com/spf13/cobra"
)

func (c *cli) depsCommand() *cobra.Command {
	var apply bool
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Find the modules the current project's main jar needs (jdeps)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.CurrentProject()
			if err != nil {
				return err
			}
			modules, err := c.app.Packager.Dependencies(cmd.Context(), p, c.app.Config)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, m := range modules {
				fmt.Fprintln(w, m)
			}
			if !apply {
				return nil
			}
			p.AddModules = modules
			if _, err := c.app.SaveProject(p); err != nil {
				return err
			}
			fmt.Fprintf(w, "✅ add-modules set to %s\n", strings.Join(modules, ","))
			return nil
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "Store the result as the project's add-modules")
	return cmd
}

type buildStep func(ctx context.Context, k *packager.Packager, p *project.InstallProject, c *cli) ([]*packager.Result, error)

func (c *cli) buildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the current project's application image and installer",
	}

	var dryRun bool
	var timeout int
	step := func(use, short string, commands func(p *project.InstallProject, c *cli) ([]*process.Command, error), run buildStep) *cobra.Command {
		sub := &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := c.app.CurrentProject()
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if dryRun {
					cmds, err := commands(p, c)
					if err != nil {
						return err
					}
					for _, pc := range cmds {
						fmt.Fprintln(w, pc.ShellString())
					}
					return nil
				}
				if timeout != 0 {
					c.app.Packager.Timeout = timeout
				}
				results, err := run(cmd.Context(), c.app.Packager, p, c)
				for _, r := range results {
					printResult(w, r)
				}
				if err != nil {
					return err
				}
				c.app.Workspace.RememberDirectory(workspace.CategoryOutput, p.ImageBuildDirectory)
				return nil
			},
		}
		sub.Flags().BoolVar(&dryRun, "dry-run", false, "Print the jpackage command lines instead of running them")
		sub.Flags().IntVar(&timeout, "timeout", 0, "jpackage timeout in seconds (-1 waits forever)")
		return sub
	}

	imageCommands := func(p *project.InstallProject, c *cli) ([]*process.Command, error) {
		ic, err := packager.ImageCommand(p, c.app.Config)
		if err != nil {
			return nil, err
		}
		return []*process.Command{ic}, nil
	}
	installerCommands := func(p *project.InstallProject, c *cli) ([]*process.Command, error) {
		ic, err := packager.InstallerCommand(p, c.app.Config)
		if err != nil {
			return nil, err
		}
		return []*process.Command{ic}, nil
	}
	allCommands := func(p *project.InstallProject, c *cli) ([]*process.Command, error) {
		cmds, err := imageCommands(p, c)
		if err != nil || packager.ImageOnly(p) {
			return cmds, err
		}
		more, err := installerCommands(p, c)
		return append(cmds, more...), err
	}

	cmd.AddCommand(
		step("image", "Build the application image", imageCommands,
			func(ctx context.Context, k *packager.Packager, p *project.InstallProject, c *cli) ([]*packager.Result, error) {
				r, err := k.BuildImage(ctx, p, c.app.Config)
				return collect(r), err
			}),
		step("installer", "Build the installer, rebuilding a stale image first", installerCommands,
			func(ctx context.Context, k *packager.Packager, p *project.InstallProject, c *cli) ([]*packager.Result, error) {
				r, err := k.BuildInstaller(ctx, p, c.app.Config)
				return collect(r), err
			}),
		step("all", "Rebuild the image and then the installer", allCommands,
			func(ctx context.Context, k *packager.Packager, p *project.InstallProject, c *cli) ([]*packager.Result, error) {
				return k.Build(ctx, p, c.app.Config)
			}),
	)
	return cmd
}

func collect(r *packager.Result) []*packager.Result {
	if r == nil {
		return nil
	}
	return []*packager.Result{r}
}

func printResult(w io.Writer, r *packager.Result) {
	if r.Output != nil {
		for _, line := range r.Output.Lines() {
			faint.Fprintln(w, line)
		}
	}
	fmt.Fprintf(w, "✅ %s\n", r.Path)
}

func (c *cli) archiveCommand() *cobra.Command {
	var format, dest string
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Pack the current project's application image into a tar archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.CurrentProject()
			if err != nil {
				return err
			}
			if p.ImageBuildDirectory == "" {
				return errs.Validation("project %q has no image build directory", p.Name)
			}
			out, err := c.app.Packager.ArchiveImage(p, c.app.Config, dest, format)
			if err != nil {
				return err
			}
			c.app.Workspace.RememberDirectory(workspace.CategoryArchive, out)
			fmt.Fprintf(cmd.OutOrStdout(), "🗜️ %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "tar.gz", "Archive format: tar, tar.gz, tgz, tar.bz2 or a chain like tar|bzip2")
	cmd.Flags().StringVarP(&dest, "output", "o", "", "Archive path (default next to the image)")
	cmd.AddCommand(c.extractCommand())
	return cmd
}

func (c *cli) extractCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "extract <archive> <dir>",
		Short: "Unpack an image archive into a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := archive.ChainFor(args[0])
			if format != "" {
				chain, err = archive.ParseChain(format)
			}
			if err != nil {
				return err
			}
			if err := archive.Extract(args[0], args[1], chain); err != nil {
				return err
			}
			c.app.Workspace.RememberDirectory(workspace.CategoryOutput, args[1])
			fmt.Fprintf(cmd.OutOrStdout(), "📂 %s\n", args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Archive format (default from the file name)")
	return cmd
}
