package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/provide-io/jpackfx/pkg/imageconv"
	"github.com/provide-io/jpackfx/pkg/jdk"
	"github.com/provide-io/jpackfx/pkg/workspace"
	"github.com/spf13/cobra"
)

func (c *cli) iconCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "icon",
		Short: "Resize images and build platform icons",
	}

	resize := &cobra.Command{
		Use:   "resize <src> <width> <height> <dst.png>",
		Short: "Scale an image and save it as PNG",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, err := strconv.Atoi(args[1])
			if err != nil || width <= 0 {
				return errs.Validation("width %q is not a positive number", args[1])
			}
			height, err := strconv.Atoi(args[2])
			if err != nil || height <= 0 {
				return errs.Validation("height %q is not a positive number", args[2])
			}
			if err := imageconv.Resize(args[0], width, height, args[3]); err != nil {
				return err
			}
			c.app.Workspace.RememberDirectory(workspace.CategoryImageFile, args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "🎨 %s (%dx%d)\n", args[3], width, height)
			return nil
		},
	}

	var system string
	var apply bool
	bundle := &cobra.Command{
		Use:   "bundle <src> [dst]",
		Short: "Build the platform icon (.icns, .ico or .png) from an image",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := jdk.Current()
			if system != "" {
				var err error
				if target, err = jdk.ParseOperatingSystem(system); err != nil {
					return err
				}
			}
			builder, err := c.app.IconBuilder(target)
			if err != nil {
				return err
			}
			src := args[0]
			if !imageconv.IsValidImage(src) {
				return errs.Validation("%s is not a usable image", src)
			}
			dst := strings.TrimSuffix(src, filepath.Ext(src)) + builder.Extension()
			if len(args) == 2 {
				dst = args[1]
			}
			if dst == src && !strings.EqualFold(filepath.Ext(src), builder.Extension()) {
				return errs.Validation("destination %s would overwrite the source", dst)
			}
			if dst != src {
				if err := builder.Build(cmd.Context(), src, dst); err != nil {
					return err
				}
			}
			c.app.Workspace.RememberDirectory(workspace.CategoryIcon, src)
			fmt.Fprintf(cmd.OutOrStdout(), "🎨 %s\n", dst)

			if !apply {
				return nil
			}
			p, err := c.app.CurrentProject()
			if err != nil {
				return err
			}
			abs, err := filepath.Abs(dst)
			if err != nil {
				return errs.Processing(err, "resolving %s", dst)
			}
			p.Icon = abs
			_, err = c.app.SaveProject(p)
			return err
		},
	}
	bundle.Flags().StringVar(&system, "os", "", "Target operating system: Windows, OSX or Linux (default: this machine)")
	bundle.Flags().BoolVar(&apply, "apply", false, "Use the icon for the current project")

	check := &cobra.Command{
		Use:   "check <file>...",
		Short: "Check that files are usable icon sources",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bad := 0
			for _, f := range args {
				if imageconv.IsValidImage(f) {
					fmt.Fprintf(cmd.OutOrStdout(), "✅ %s\n", f)
				} else {
					bad++
					fmt.Fprintf(cmd.OutOrStdout(), "❌ %s\n", f)
				}
			}
			if bad > 0 {
				return errs.Validation("%d of %d files are not valid images", bad, len(args))
			}
			return nil
		},
	}

	cmd.AddCommand(resize, bundle, check)
	return cmd
}
