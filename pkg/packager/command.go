package packager

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/provide-io/jpackfx/pkg/config"
	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/provide-io/jpackfx/pkg/jdk"
	"github.com/provide-io/jpackfx/pkg/process"
	"github.com/provide-io/jpackfx/pkg/project"
	"github.com/provide-io/jpackfx/pkg/utils/shellparse"
)

// ImagePath is where jpackage puts the application image of p.
func ImagePath(p *project.InstallProject) string {
	name := p.Name
	if p.PackageJDK != nil && p.PackageJDK.OperatingSystem() == jdk.OSX {
		name += macBundleSuffix
	}
	return filepath.Join(p.ImageBuildDirectory, name)
}

// ImageCommand assembles the jpackage invocation that builds the application
// image of p.
func ImageCommand(p *project.InstallProject, cfg *config.Configuration) (*process.Command, error) {
	cmd, err := baseCommand(p)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.ImageBuildDirectory) == "" {
		return nil, errs.Validation("project %q has no image build directory", p.Name)
	}
	if strings.TrimSpace(p.MainJar) == "" {
		return nil, errs.Validation("project %q has no main jar", p.Name)
	}
	if strings.TrimSpace(p.InputDirectory) == "" {
		return nil, errs.Validation("project %q has no input directory", p.Name)
	}

	modulePath, err := ModulePath(p, cfg)
	if err != nil {
		return nil, err
	}

	args := cmd.Args
	args.Add("--type", ImageKind)
	args.Add("--input", p.InputDirectory)
	args.Add("--dest", p.ImageBuildDirectory)
	args.Add("--module-path", strings.Join(modulePath, string(filepath.ListSeparator)))
	args.Add("--add-modules", strings.Join(nonBlank(p.AddModules), ","))
	args.Add("--main-jar", p.MainJar)
	args.Add("--main-class", p.MainClass)
	args.Add("--icon", p.Icon)
	if err := addShellWords(args, "--java-options", p.JavaOptions); err != nil {
		return nil, err
	}
	if err := addShellWords(args, "--arguments", p.Arguments); err != nil {
		return nil, err
	}
	if p.InstallJDK != nil && !p.InstallJDK.Equal(p.PackageJDK) {
		args.Add("--runtime-image", runtimeImage(p.InstallJDK))
	}

	switch p.PackageJDK.OperatingSystem() {
	case jdk.OSX:
		addMacOptions(args, p.Mac)
	case jdk.Windows:
		args.AddIf(p.Windows.Console, "--win-console")
	}
	return cmd, nil
}

// InstallerCommand assembles the jpackage invocation that wraps the image of
// p into an installer of p.InstallerType.
func InstallerCommand(p *project.InstallProject, cfg *config.Configuration) (*process.Command, error) {
	cmd, err := baseCommand(p)
	if err != nil {
		return nil, err
	}
	system := p.PackageJDK.OperatingSystem()
	if p.InstallerType == ImageKind || !validInstallerType(system, p.InstallerType) {
		return nil, errs.Validation("installer type %q is not available on %s", p.InstallerType, system)
	}
	if strings.TrimSpace(p.InstallerDirectory) == "" {
		return nil, errs.Validation("project %q has no installer directory", p.Name)
	}

	args := cmd.Args
	args.Add("--type", p.InstallerType)
	args.Add("--app-image", ImagePath(p))
	args.Add("--dest", p.InstallerDirectory)

	switch system {
	case jdk.OSX:
		addMacOptions(args, p.Mac)
	case jdk.Windows:
		w := p.Windows
		args.AddIf(w.DirChooser, "--win-dir-chooser")
		args.AddIf(w.Menu, "--win-menu")
		args.Add("--win-menu-group", w.MenuGroup)
		args.AddIf(w.Shortcut, "--win-shortcut")
		args.AddIf(w.PerUserInstall, "--win-per-user-install")
		args.Add("--win-upgrade-uuid", w.UpgradeUUID)
	case jdk.Linux:
		l := p.Linux
		args.Add("--linux-package-name", l.PackageName)
		args.Add("--linux-menu-group", l.MenuGroup)
		args.AddIf(l.Shortcut, "--linux-shortcut")
		args.Add("--linux-app-category", l.AppCategory)
	}
	return cmd, nil
}

// ModulePath is the project module path plus the selected JavaFX jmods
// directory, if any.
func ModulePath(p *project.InstallProject, cfg *config.Configuration) ([]string, error) {
	path := nonBlank(p.ModulePath)
	if p.JavaFXModules != "" {
		dir, err := cfg.JavaFXModule(p.JavaFXModules)
		if err != nil {
			return nil, err
		}
		path = append(path, dir)
	}
	return path, nil
}

func baseCommand(p *project.InstallProject) (*process.Command, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.PackageJDK == nil {
		return nil, errs.Validation("project %q has no jpackage JDK", p.Name)
	}
	exe, err := p.PackageJDK.PackageExecutable()
	if err != nil {
		return nil, err
	}

	cmd := process.NewCommand(exe)
	cmd.Args.Add("--name", p.Name)
	cmd.Args.Add("--app-version", p.Version)
	cmd.Args.Add("--copyright", p.Copyright)
	cmd.Args.Add("--vendor", p.Vendor)
	cmd.Args.Add("--description", p.Description)
	return cmd, nil
}

func addMacOptions(args *process.Arguments, m project.MacOptions) {
	args.Add("--mac-package-identifier", m.PackageIdentifier)
	args.Add("--mac-package-name", m.PackageName)
	if !m.Sign {
		return
	}
	args.AddFlag("--mac-sign")
	args.Add("--mac-signing-keychain", m.SigningKeychain)
	args.Add("--mac-signing-key-user-name", m.SigningKeyUserName)
	args.Add("--mac-package-signing-prefix", m.PackageSigningPrefix)
}

// addShellWords checks that value splits into words and passes it through as
// one jpackage option value, which jpackage splits the same way.
func addShellWords(args *process.Arguments, flag, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if _, err := shellparse.Split(value); err != nil {
		return errs.Validation("%s %q: %v", flag, value, err)
	}
	args.Add(flag, value)
	return nil
}

// runtimeImage is the directory jpackage should copy as the bundled runtime.
func runtimeImage(j *jdk.JDK) string {
	if j.OperatingSystem() == jdk.OSX {
		home := filepath.Join(j.Path(), "Contents", "Home")
		if info, err := os.Stat(home); err == nil && info.IsDir() {
			return home
		}
	}
	return j.Path()
}

func validInstallerType(system jdk.OperatingSystem, kind string) bool {
	for _, t := range project.InstallerTypes[system] {
		if t == kind {
			return true
		}
	}
	return false
}

func nonBlank(values []string) []string {
	var kept []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	return kept
}
