// Package basedir resolves the directory jpackfx keeps its configuration,
// workspace and projects in.
package basedir

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvHome overrides the default base directory.
const EnvHome = "JPACKFX_HOME"

const (
	defaultName = ".jpackfx"

	ConfigurationFile = "configuration.json"
	WorkspaceFile     = "workspace.json"
	ProjectsDir       = "projects"
	LogsDir           = "logs"
	CacheDir          = "cache"
)

// Resolve returns the base directory: the explicit value when set, then
// $JPACKFX_HOME, then ~/.jpackfx, then a directory under the temp dir.
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvHome); env != "" {
		return env
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, defaultName)
	}
	return filepath.Join(os.TempDir(), "jpackfx")
}

// Layout names the standard locations under one base directory.
type Layout struct {
	Root string
}

// New returns the layout rooted at Resolve(explicit).
func New(explicit string) Layout {
	return Layout{Root: Resolve(explicit)}
}

func (l Layout) Configuration() string { return filepath.Join(l.Root, ConfigurationFile) }
func (l Layout) Workspace() string     { return filepath.Join(l.Root, WorkspaceFile) }
func (l Layout) Projects() string      { return filepath.Join(l.Root, ProjectsDir) }
func (l Layout) Logs() string          { return filepath.Join(l.Root, LogsDir) }
func (l Layout) Cache() string         { return filepath.Join(l.Root, CacheDir) }

// Ensure creates the base directory and its standard subdirectories.
// Existing directories are fine.
func (l Layout) Ensure() error {
	for _, dir := range []string{l.Root, l.Projects(), l.Logs(), l.Cache()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}
