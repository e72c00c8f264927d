package main

import (
	"fmt"

	"github.com/provide-io/jpackfx/pkg/jdk"
	"github.com/provide-io/jpackfx/pkg/workspace"
	"github.com/spf13/cobra"
)

func (c *cli) jdkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jdk",
		Short: "Manage registered JDKs",
	}

	var name, system string
	add := &cobra.Command{
		Use:   "add <path>",
		Short: "Register a JDK installation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := jdk.Current()
			if system != "" {
				var err error
				if target, err = jdk.ParseOperatingSystem(system); err != nil {
					return err
				}
			}
			j, err := c.app.RegisterJDK(cmd.Context(), name, args[0], target)
			if err != nil {
				return err
			}
			c.app.Workspace.RememberDirectory(workspace.CategoryJDK, args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Registered JDK %q (%s)\n", j.Name(), j.OperatingSystem())
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "Label for the JDK (derived from the path when empty)")
	add.Flags().StringVar(&system, "os", "", "Operating system of the JDK: Windows, OSX or Linux (default: this machine)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List registered JDKs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			names := c.app.Config.JDKNames()
			if len(names) == 0 {
				faint.Fprintln(w, "No JDKs registered")
				return nil
			}
			for _, n := range names {
				j := c.app.Config.JDKs[n]
				mark := "  "
				if j.SupportsJPackage() {
					mark = "📦"
				}
				heading.Fprintf(w, "%s %s", mark, n)
				fmt.Fprintf(w, "  %s ", j.Path())
				faint.Fprintf(w, "(%s)\n", j.OperatingSystem())
			}
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <name>",
		Short: "Forget a registered JDK",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Config.RemoveJDK(args[0]); err != nil {
				return err
			}
			if err := c.app.SaveConfig(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️ Removed JDK %q\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, remove)
	return cmd
}

func (c *cli) javafxCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "javafx",
		Short: "Manage JavaFX SDK and jmods directories",
	}

	addLib := &cobra.Command{
		Use:   "add-lib <name> <path>",
		Short: "Register a JavaFX SDK lib directory (used by jdeps)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Config.AddJavaFXLib(args[0], args[1]); err != nil {
				return err
			}
			c.app.Workspace.RememberDirectory(workspace.CategoryJavaFX, args[1])
			return c.saveConfig(cmd, "✅ Registered JavaFX lib %q\n", args[0])
		},
	}

	addMods := &cobra.Command{
		Use:   "add-mods <name> <path>",
		Short: "Register a JavaFX jmods directory (used by jpackage)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Config.AddJavaFXModules(args[0], args[1]); err != nil {
				return err
			}
			c.app.Workspace.RememberDirectory(workspace.CategoryJavaFX, args[1])
			return c.saveConfig(cmd, "✅ Registered JavaFX modules %q\n", args[0])
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List JavaFX directories",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			heading.Fprintln(w, "Libs")
			for _, d := range c.app.Config.Libs() {
				field(w, d.Name, d.Path)
			}
			heading.Fprintln(w, "Modules")
			for _, d := range c.app.Config.Modules() {
				field(w, d.Name, d.Path)
			}
		},
	}

	var mods bool
	remove := &cobra.Command{
		Use:   "remove <name>",
		Short: "Forget a JavaFX lib (or, with --mods, jmods) directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if mods {
				err = c.app.Config.RemoveJavaFXModules(args[0])
			} else {
				err = c.app.Config.RemoveJavaFXLib(args[0])
			}
			if err != nil {
				return err
			}
			return c.saveConfig(cmd, "🗑️ Removed %q\n", args[0])
		},
	}
	remove.Flags().BoolVar(&mods, "mods", false, "Remove a jmods entry instead of a lib entry")

	cmd.AddCommand(addLib, addMods, list, remove)
	return cmd
}

func (c *cli) saveConfig(cmd *cobra.Command, format string, args ...interface{}) error {
	if err := c.app.SaveConfig(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
	return nil
}
