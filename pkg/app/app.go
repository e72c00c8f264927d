// Package app wires the jpackfx stores, the process executor and the
// packager into one session rooted at a base directory.
package app

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/jpackfx/internal/basedir"
	"github.com/provide-io/jpackfx/pkg/config"
	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/provide-io/jpackfx/pkg/imageconv"
	"github.com/provide-io/jpackfx/pkg/jdk"
	"github.com/provide-io/jpackfx/pkg/packager"
	"github.com/provide-io/jpackfx/pkg/process"
	"github.com/provide-io/jpackfx/pkg/project"
	"github.com/provide-io/jpackfx/pkg/workspace"
)

// MinJPackageRelease is the first feature release that ships jpackage.
const MinJPackageRelease = 14

// App is one jpackfx session. Everything it owns is handed to consumers
// explicitly.
type App struct {
	Logger hclog.Logger
	Layout basedir.Layout

	Config    *config.Configuration
	Workspace *workspace.Workspace

	ConfigStore    *config.Store
	Projects       *project.Store
	WorkspaceStore *workspace.Store

	Runner   process.Runner
	Packager *packager.Packager
}

// Open resolves the base directory, creates its layout and loads the
// configuration and workspace. Neither file is required to exist.
func Open(baseDir string, logger hclog.Logger) (*App, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	layout := basedir.New(baseDir)
	if err := layout.Ensure(); err != nil {
		return nil, errs.CouldNotSave(err, "preparing base directory %s", layout.Root)
	}
	logger.Debug("📁 Base directory", "path", layout.Root)

	runner := process.NewExecutor(logger)
	a := &App{
		Logger:      logger,
		Layout:      layout,
		ConfigStore: config.NewStore(layout.Configuration(), logger),
		Projects:    project.NewStore(layout.Projects(), logger),
		Runner:      runner,
		Packager:    packager.New(runner, logger),
	}
	a.Packager.WorkDir = layout.Cache()
	a.WorkspaceStore = workspace.NewStore(layout.Workspace(), a.Projects, logger)
	a.Config = a.ConfigStore.LoadOrDefault()
	a.Workspace = a.WorkspaceStore.LoadOrDefault()
	return a, nil
}

// CurrentProject returns the project selected in the workspace.
func (a *App) CurrentProject() (*project.InstallProject, error) {
	if a.Workspace.CurrentProject == nil {
		return nil, errs.Validation("no current project, use `jpackfx project use <name>`")
	}
	return a.Workspace.CurrentProject, nil
}

// SaveProject saves p and the configuration it refers to, and makes p the
// current project. Project and configuration failures are returned; the
// workspace is saved on a best-effort basis.
func (a *App) SaveProject(p *project.InstallProject) (string, error) {
	path, err := a.Projects.Save(p)
	if err != nil {
		return "", err
	}
	if err := a.ConfigStore.Save(a.Config); err != nil {
		return path, err
	}
	a.Workspace.SetCurrent(p, path)
	a.WorkspaceStore.SaveQuietly(a.Workspace)
	return path, nil
}

// OpenProject loads a project by name, falling back to the location recorded
// in the workspace history, and makes it current.
func (a *App) OpenProject(name string) (*project.InstallProject, error) {
	path := a.Projects.Path(name)
	p, err := a.Projects.LoadFile(path)
	if errors.Is(err, errs.ErrNotFound) {
		if recorded, ok := a.Workspace.ProjectPath(name); ok && recorded != path {
			path = recorded
			p, err = a.Projects.LoadFile(path)
		}
	}
	if err != nil {
		return nil, err
	}
	a.Workspace.SetCurrent(p, path)
	a.WorkspaceStore.SaveQuietly(a.Workspace)
	return p, nil
}

// RegisterJDK validates a JDK root, names it (deriving a label when name is
// blank) and saves it in the configuration. A JDK already registered under
// another label is renamed.
func (a *App) RegisterJDK(ctx context.Context, name, root string, system jdk.OperatingSystem) (*jdk.JDK, error) {
	if strings.TrimSpace(name) == "" {
		name = jdk.SuggestName(root, system)
	}
	j, err := jdk.New(name, root, system)
	if err != nil {
		return nil, err
	}
	if existing, ok := a.Config.FindJDK(j); ok && existing.Name() != name {
		a.Logger.Info("✏️ Renaming JDK", "from", existing.Name(), "to", name)
		if err := a.Config.RemoveJDK(existing.Name()); err != nil {
			return nil, err
		}
	}

	if system == jdk.Current() {
		a.checkJDK(ctx, j)
	}
	if err := a.Config.AddJDK(j); err != nil {
		return nil, err
	}
	if err := a.ConfigStore.Save(a.Config); err != nil {
		return nil, err
	}
	return j, nil
}

// checkJDK logs what the JDK can do; it never rejects one, since the same
// JDK may serve as a bundled runtime only.
func (a *App) checkJDK(ctx context.Context, j *jdk.JDK) {
	v, err := j.ProbeVersion(ctx, a.Runner)
	if err != nil {
		a.Logger.Warn("⚠️ Could not determine JDK version", "jdk", j.Name(), "error", err)
		return
	}
	a.Logger.Info("☕ Registered JDK", "jdk", j.Name(), "version", v.String())
	if !j.SupportsJPackage() || jdk.FeatureRelease(v) < MinJPackageRelease {
		a.Logger.Warn("⚠️ JDK cannot run jpackage, usable as runtime only", "jdk", j.Name(), "version", v.String())
	}
}

// IconBuilder returns the icon builder for system.
func (a *App) IconBuilder(system jdk.OperatingSystem) (imageconv.LogoBuilder, error) {
	return imageconv.BuilderFor(system, a.Runner, a.Logger)
}

// SaveConfig writes the configuration.
func (a *App) SaveConfig() error {
	return a.ConfigStore.Save(a.Config)
}

// Close saves the workspace. Failures are logged only.
func (a *App) Close() {
	a.WorkspaceStore.SaveQuietly(a.Workspace)
}
