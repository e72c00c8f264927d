package config

import (
	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/jpackfx/internal/jsonfile"
	"github.com/provide-io/jpackfx/pkg/errs"
)

// Store loads and saves the configuration file.
type Store struct {
	path   string
	logger hclog.Logger
}

// NewStore creates a store for the configuration file at path.
func NewStore(path string, logger hclog.Logger) *Store {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Store{path: path, logger: logger.Named("config")}
}

// Path returns the configuration file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the configuration. It fails with ErrNotFound when the file is
// absent and ErrBadFile when it cannot be decoded.
func (s *Store) Load() (*Configuration, error) {
	var c Configuration
	if err := jsonfile.Read(s.path, &c); err != nil {
		return nil, err
	}
	c.normalize()
	for name, j := range c.JDKs {
		if j == nil {
			return nil, errs.BadFile(nil, "JDK entry %q in %s is null", name, s.path)
		}
		if j.Name() != name {
			// the map key is the label the user sees
			c.JDKs[name] = j.WithName(name)
		}
	}
	s.logger.Debug("📖 Loaded configuration", "path", s.path,
		"jdks", len(c.JDKs), "libs", len(c.JavaFXLibs), "modules", len(c.JavaFXModules))
	return &c, nil
}

// LoadOrDefault reads the configuration, falling back to an empty one when
// the file is missing or damaged. Losing the configuration is not fatal.
func (s *Store) LoadOrDefault() *Configuration {
	c, err := s.Load()
	switch {
	case err == nil:
		return c
	case errors.Is(err, errs.ErrNotFound):
		s.logger.Info("No configuration yet, starting empty", "path", s.path)
	default:
		s.logger.Warn("⚠️ Configuration unreadable, starting empty", "path", s.path, "error", err)
	}
	return New()
}

// Save writes the configuration, creating parent directories as needed.
func (s *Store) Save(c *Configuration) error {
	if err := jsonfile.Write(s.path, c); err != nil {
		return err
	}
	s.logger.Debug("💾 Saved configuration", "path", s.path)
	return nil
}
