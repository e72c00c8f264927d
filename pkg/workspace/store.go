package workspace

import (
	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/jpackfx/internal/jsonfile"
	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/provide-io/jpackfx/pkg/project"
)

// ProjectLoader reads a project file; *project.Store satisfies it.
type ProjectLoader interface {
	LoadFile(path string) (*project.InstallProject, error)
}

// Store loads and saves the workspace file.
type Store struct {
	path     string
	projects ProjectLoader
	logger   hclog.Logger
}

// NewStore creates a store for the workspace file at path. projects may be
// nil, in which case the current project is never loaded.
func NewStore(path string, projects ProjectLoader, logger hclog.Logger) *Store {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Store{path: path, projects: projects, logger: logger.Named("workspace")}
}

// Path returns the workspace file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the workspace and then tries to load its current project. A
// project that cannot be loaded is logged and cleared; only the workspace
// file itself produces errors.
func (s *Store) Load() (*Workspace, error) {
	w := New()
	if err := jsonfile.Read(s.path, w); err != nil {
		return nil, err
	}
	w.normalize()
	s.loadCurrent(w)
	return w, nil
}

func (s *Store) loadCurrent(w *Workspace) {
	if w.CurrentProjectPath == "" || s.projects == nil {
		return
	}
	p, err := s.projects.LoadFile(w.CurrentProjectPath)
	if err != nil {
		s.logger.Warn("⚠️ Current project could not be loaded", "path", w.CurrentProjectPath, "error", err)
		w.ClearCurrent()
		return
	}
	w.CurrentProject = p
	s.logger.Debug("📂 Restored current project", "name", p.Name)
}

// LoadOrDefault is Load that never fails.
func (s *Store) LoadOrDefault() *Workspace {
	w, err := s.Load()
	switch {
	case err == nil:
		return w
	case errors.Is(err, errs.ErrNotFound):
		s.logger.Debug("No workspace yet", "path", s.path)
	default:
		s.logger.Warn("⚠️ Workspace unreadable, starting empty", "path", s.path, "error", err)
	}
	return New()
}

// Save writes the workspace.
func (s *Store) Save(w *Workspace) error {
	if err := jsonfile.Write(s.path, w); err != nil {
		return err
	}
	s.logger.Trace("💾 Saved workspace", "path", s.path)
	return nil
}

// SaveQuietly saves and logs any failure instead of returning it.
func (s *Store) SaveQuietly(w *Workspace) {
	if err := s.Save(w); err != nil {
		s.logger.Warn("⚠️ Workspace not saved", "path", s.path, "error", err)
	}
}
