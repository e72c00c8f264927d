package project

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/jpackfx/internal/jsonfile"
	"github.com/provide-io/jpackfx/pkg/errs"
)

const fileSuffix = ".json"

// Store keeps one JSON file per project in a directory.
type Store struct {
	dir    string
	logger hclog.Logger
}

// NewStore creates a store over dir (usually <base>/projects).
func NewStore(dir string, logger hclog.Logger) *Store {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Store{dir: dir, logger: logger.Named("project")}
}

// Dir returns the projects directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file a project with this name is stored in.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, strings.TrimSpace(name)+fileSuffix)
}

// Save validates p and writes it to Path(p.Name), returning that path.
func (s *Store) Save(p *InstallProject) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	path := s.Path(p.Name)
	if err := jsonfile.Write(path, p); err != nil {
		return "", err
	}
	s.logger.Info("💾 Saved project", "name", p.Name, "path", path)
	return path, nil
}

// Load reads the project with the given name.
func (s *Store) Load(name string) (*InstallProject, error) {
	return s.LoadFile(s.Path(name))
}

// LoadFile reads a project from an arbitrary path.
func (s *Store) LoadFile(path string) (*InstallProject, error) {
	var p InstallProject
	if err := jsonfile.Read(path, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, errs.BadFile(err, "project file %s", path)
	}
	s.logger.Debug("📖 Loaded project", "name", p.Name, "path", path)
	return &p, nil
}

// List returns the names of the stored projects, sorted. A missing
// directory means no projects.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errs.NotFound(err, "listing %s", s.dir)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), fileSuffix))
	}
	sort.Strings(names)
	return names, nil
}
