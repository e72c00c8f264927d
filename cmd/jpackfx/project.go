package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/provide-io/jpackfx/pkg/jdk"
	"github.com/provide-io/jpackfx/pkg/project"
	"github.com/provide-io/jpackfx/pkg/workspace"
	"github.com/spf13/cobra"
)

// setter assigns one project field from its command-line form.
type setter func(c *cli, p *project.InstallProject, value string) error

func text(field func(p *project.InstallProject) *string) setter {
	return func(_ *cli, p *project.InstallProject, value string) error {
		*field(p) = strings.TrimSpace(value)
		return nil
	}
}

func dir(category string, field func(p *project.InstallProject) *string) setter {
	return func(c *cli, p *project.InstallProject, value string) error {
		value = strings.TrimSpace(value)
		*field(p) = value
		c.app.Workspace.RememberDirectory(category, value)
		return nil
	}
}

func flag(field func(p *project.InstallProject) *bool) setter {
	return func(_ *cli, p *project.InstallProject, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errs.Validation("%q is not a boolean", value)
		}
		*field(p) = b
		return nil
	}
}

func list(sep string, field func(p *project.InstallProject) *[]string) setter {
	return func(_ *cli, p *project.InstallProject, value string) error {
		var items []string
		for _, item := range strings.Split(value, sep) {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		*field(p) = items
		return nil
	}
}

func jdkRef(field func(p *project.InstallProject) **jdk.JDK) setter {
	return func(c *cli, p *project.InstallProject, value string) error {
		if strings.TrimSpace(value) == "" {
			*field(p) = nil
			return nil
		}
		j, err := c.app.Config.JDK(value)
		if err != nil {
			return err
		}
		*field(p) = j
		return nil
	}
}

func structure(update func(files, dirs []string, mainJar string, value []string) ([]string, []string, string)) setter {
	return func(_ *cli, p *project.InstallProject, value string) error {
		var files, dirs []string
		mainJar := ""
		if s := p.ImageStructure; s != nil {
			files, dirs, mainJar = s.Files(), s.Directories(), s.MainJar()
		}
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		files, dirs, mainJar = update(files, dirs, mainJar, items)
		s, err := project.NewSimpleStructure(files, dirs, mainJar)
		if err != nil {
			return err
		}
		p.ImageStructure = s
		return nil
	}
}

var pathSep = string(filepath.ListSeparator)

var setters = map[string]setter{
	"version":        text(func(p *project.InstallProject) *string { return &p.Version }),
	"copyright":      text(func(p *project.InstallProject) *string { return &p.Copyright }),
	"vendor":         text(func(p *project.InstallProject) *string { return &p.Vendor }),
	"description":    text(func(p *project.InstallProject) *string { return &p.Description }),
	"main-jar":       text(func(p *project.InstallProject) *string { return &p.MainJar }),
	"main-class":     text(func(p *project.InstallProject) *string { return &p.MainClass }),
	"java-options":   text(func(p *project.InstallProject) *string { return &p.JavaOptions }),
	"arguments":      text(func(p *project.InstallProject) *string { return &p.Arguments }),
	"javafx-lib":     text(func(p *project.InstallProject) *string { return &p.JavaFXLib }),
	"javafx-modules": text(func(p *project.InstallProject) *string { return &p.JavaFXModules }),
	"icon":           dir(workspace.CategoryIcon, func(p *project.InstallProject) *string { return &p.Icon }),
	"image-dir":      dir(workspace.CategoryOutput, func(p *project.InstallProject) *string { return &p.ImageBuildDirectory }),
	"installer-dir":  dir(workspace.CategoryOutput, func(p *project.InstallProject) *string { return &p.InstallerDirectory }),
	"input-dir":      dir(workspace.CategoryMainJar, func(p *project.InstallProject) *string { return &p.InputDirectory }),
	"module-path":    list(pathSep, func(p *project.InstallProject) *[]string { return &p.ModulePath }),
	"class-path":     list(pathSep, func(p *project.InstallProject) *[]string { return &p.ClassPath }),
	"add-modules":    list(",", func(p *project.InstallProject) *[]string { return &p.AddModules }),
	"install-jdk":    jdkRef(func(p *project.InstallProject) **jdk.JDK { return &p.InstallJDK }),
	"jpackage-jdk":   jdkRef(func(p *project.InstallProject) **jdk.JDK { return &p.PackageJDK }),
	"installer-type": func(_ *cli, p *project.InstallProject, value string) error {
		p.InstallerType = strings.ToLower(strings.TrimSpace(value))
		return nil
	},

	"mac.sign":                   flag(func(p *project.InstallProject) *bool { return &p.Mac.Sign }),
	"mac.signing-keychain":       text(func(p *project.InstallProject) *string { return &p.Mac.SigningKeychain }),
	"mac.signing-key-user-name":  text(func(p *project.InstallProject) *string { return &p.Mac.SigningKeyUserName }),
	"mac.package-identifier":     text(func(p *project.InstallProject) *string { return &p.Mac.PackageIdentifier }),
	"mac.package-name":           text(func(p *project.InstallProject) *string { return &p.Mac.PackageName }),
	"mac.package-signing-prefix": text(func(p *project.InstallProject) *string { return &p.Mac.PackageSigningPrefix }),

	"win.console":          flag(func(p *project.InstallProject) *bool { return &p.Windows.Console }),
	"win.dir-chooser":      flag(func(p *project.InstallProject) *bool { return &p.Windows.DirChooser }),
	"win.menu":             flag(func(p *project.InstallProject) *bool { return &p.Windows.Menu }),
	"win.menu-group":       text(func(p *project.InstallProject) *string { return &p.Windows.MenuGroup }),
	"win.shortcut":         flag(func(p *project.InstallProject) *bool { return &p.Windows.Shortcut }),
	"win.per-user-install": flag(func(p *project.InstallProject) *bool { return &p.Windows.PerUserInstall }),
	"win.upgrade-uuid": func(_ *cli, p *project.InstallProject, value string) error {
		id, err := uuid.Parse(strings.TrimSpace(value))
		if err != nil {
			return errs.Validation("%q is not a UUID", value)
		}
		p.Windows.UpgradeUUID = id.String()
		return nil
	},

	"linux.package-name": text(func(p *project.InstallProject) *string { return &p.Linux.PackageName }),
	"linux.menu-group":   text(func(p *project.InstallProject) *string { return &p.Linux.MenuGroup }),
	"linux.shortcut":     flag(func(p *project.InstallProject) *bool { return &p.Linux.Shortcut }),
	"linux.app-category": text(func(p *project.InstallProject) *string { return &p.Linux.AppCategory }),

	"structure.files": structure(func(_, dirs []string, jar string, v []string) ([]string, []string, string) {
		return v, dirs, jar
	}),
	"structure.directories": structure(func(files, _ []string, jar string, v []string) ([]string, []string, string) {
		return files, v, jar
	}),
	"structure.main-jar": structure(func(files, dirs []string, _ string, v []string) ([]string, []string, string) {
		return files, dirs, strings.Join(v, ",")
	}),
}

func setterKeys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *cli) projectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create, inspect and edit install projects",
	}

	newCmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a project and make it current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := project.New(args[0])
			switch _, err := c.app.Projects.Load(p.Name); {
			case err == nil:
				return errs.Validation("project %q already exists", p.Name)
			case !errors.Is(err, errs.ErrNotFound):
				return err
			}
			path, err := c.app.SaveProject(p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Created project %q at %s\n", p.Name, path)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show [name]",
		Short: "Show a project (the current one by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.projectArg(args)
			if err != nil {
				return err
			}
			printProject(cmd.OutOrStdout(), p)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a field of the current project",
		Long:  "Set a field of the current project. Keys:\n  " + strings.Join(setterKeys(), "\n  "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.CurrentProject()
			if err != nil {
				return err
			}
			assign, ok := setters[args[0]]
			if !ok {
				return errs.Validation("unknown project key %q", args[0])
			}
			if err := assign(c, p, args[1]); err != nil {
				return err
			}
			if _, err := c.app.SaveProject(p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %s updated\n", args[0])
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := c.app.Projects.List()
			if err != nil {
				return err
			}
			current := ""
			if p := c.app.Workspace.CurrentProject; p != nil {
				current = p.Name
			}
			w := cmd.OutOrStdout()
			for _, n := range names {
				if n == current {
					heading.Fprintf(w, "* %s\n", n)
				} else {
					fmt.Fprintf(w, "  %s\n", n)
				}
			}
			return nil
		},
	}

	use := &cobra.Command{
		Use:   "use <name>",
		Short: "Make a saved project current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.OpenProject(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "📂 Current project is now %q\n", p.Name)
			return nil
		},
	}

	cmd.AddCommand(newCmd, show, set, listCmd, use)
	return cmd
}

// projectArg loads the named project, or returns the current one.
func (c *cli) projectArg(args []string) (*project.InstallProject, error) {
	if len(args) == 0 {
		return c.app.CurrentProject()
	}
	return c.app.Projects.Load(args[0])
}

func printProject(w io.Writer, p *project.InstallProject) {
	heading.Fprintf(w, "%s %s\n", p.Name, p.Version)
	field(w, "vendor", p.Vendor)
	field(w, "copyright", p.Copyright)
	field(w, "description", p.Description)
	field(w, "installer-type", p.InstallerType)
	if p.PackageJDK != nil {
		field(w, "jpackage-jdk", p.PackageJDK.Name())
	}
	if p.InstallJDK != nil {
		field(w, "install-jdk", p.InstallJDK.Name())
	}
	field(w, "main-jar", p.MainJar)
	field(w, "main-class", p.MainClass)
	field(w, "module-path", strings.Join(p.ModulePath, pathSep))
	field(w, "class-path", strings.Join(p.ClassPath, pathSep))
	field(w, "add-modules", strings.Join(p.AddModules, ","))
	field(w, "javafx-lib", p.JavaFXLib)
	field(w, "javafx-modules", p.JavaFXModules)
	field(w, "input-dir", p.InputDirectory)
	field(w, "image-dir", p.ImageBuildDirectory)
	field(w, "installer-dir", p.InstallerDirectory)
	field(w, "icon", p.Icon)
	field(w, "java-options", p.JavaOptions)
	field(w, "arguments", p.Arguments)
	if s := p.ImageStructure; s != nil {
		field(w, "structure.main-jar", s.MainJar())
		field(w, "structure.files", strings.Join(s.Files(), ","))
		field(w, "structure.directories", strings.Join(s.Directories(), ","))
	}
	field(w, "win.upgrade-uuid", p.Windows.UpgradeUUID)
	field(w, "win.menu-group", p.Windows.MenuGroup)
	field(w, "mac.package-identifier", p.Mac.PackageIdentifier)
	if p.Mac.Sign {
		field(w, "mac.sign", "true")
		field(w, "mac.signing-key-user-name", p.Mac.SigningKeyUserName)
	}
	field(w, "linux.package-name", p.Linux.PackageName)
}
