// Package config holds the named JDKs and JavaFX directories a user has
// registered, and persists them to configuration.json.
package config

import (
	"sort"
	"strings"

	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/provide-io/jpackfx/pkg/jdk"
)

// NamedDirectory is a user-chosen label for a filesystem location.
type NamedDirectory struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Configuration maps labels to JDKs, JavaFX SDK lib directories and JavaFX
// jmods directories. Labels are unique within each map.
type Configuration struct {
	JDKs          map[string]*jdk.JDK `json:"jdks"`
	JavaFXLibs    map[string]string   `json:"javafx-libs"`
	JavaFXModules map[string]string   `json:"javafx-modules"`
}

// New returns an empty configuration.
func New() *Configuration {
	c := &Configuration{}
	c.normalize()
	return c
}

func (c *Configuration) normalize() {
	if c.JDKs == nil {
		c.JDKs = make(map[string]*jdk.JDK)
	}
	if c.JavaFXLibs == nil {
		c.JavaFXLibs = make(map[string]string)
	}
	if c.JavaFXModules == nil {
		c.JavaFXModules = make(map[string]string)
	}
}

func requireName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.Validation("%s name is required", kind)
	}
	return nil
}

// AddJDK registers j under its name, replacing any JDK with that name.
func (c *Configuration) AddJDK(j *jdk.JDK) error {
	if err := requireName("JDK", j.Name()); err != nil {
		return err
	}
	c.normalize()
	c.JDKs[j.Name()] = j
	return nil
}

// JDK looks up a JDK by name.
func (c *Configuration) JDK(name string) (*jdk.JDK, error) {
	j, ok := c.JDKs[name]
	if !ok {
		return nil, errs.NotFound(nil, "no JDK named %q", name)
	}
	return j, nil
}

// RemoveJDK deletes the named JDK.
func (c *Configuration) RemoveJDK(name string) error {
	if _, ok := c.JDKs[name]; !ok {
		return errs.NotFound(nil, "no JDK named %q", name)
	}
	delete(c.JDKs, name)
	return nil
}

// JDKNames returns the registered JDK labels, sorted.
func (c *Configuration) JDKNames() []string {
	names := make([]string, 0, len(c.JDKs))
	for name := range c.JDKs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FindJDK returns the registered JDK equal to j, if any.
func (c *Configuration) FindJDK(j *jdk.JDK) (*jdk.JDK, bool) {
	for _, name := range c.JDKNames() {
		if c.JDKs[name].Equal(j) {
			return c.JDKs[name], true
		}
	}
	return nil, false
}

// AddJavaFXLib registers a JavaFX SDK lib directory.
func (c *Configuration) AddJavaFXLib(name, path string) error {
	if err := requireName("JavaFX lib", name); err != nil {
		return err
	}
	c.normalize()
	c.JavaFXLibs[name] = path
	return nil
}

// AddJavaFXModules registers a JavaFX jmods directory.
func (c *Configuration) AddJavaFXModules(name, path string) error {
	if err := requireName("JavaFX modules", name); err != nil {
		return err
	}
	c.normalize()
	c.JavaFXModules[name] = path
	return nil
}

// JavaFXLib looks up a lib directory by name.
func (c *Configuration) JavaFXLib(name string) (string, error) {
	p, ok := c.JavaFXLibs[name]
	if !ok {
		return "", errs.NotFound(nil, "no JavaFX lib named %q", name)
	}
	return p, nil
}

// JavaFXModule looks up a jmods directory by name.
func (c *Configuration) JavaFXModule(name string) (string, error) {
	p, ok := c.JavaFXModules[name]
	if !ok {
		return "", errs.NotFound(nil, "no JavaFX modules named %q", name)
	}
	return p, nil
}

// RemoveJavaFXLib deletes a lib directory entry.
func (c *Configuration) RemoveJavaFXLib(name string) error {
	if _, ok := c.JavaFXLibs[name]; !ok {
		return errs.NotFound(nil, "no JavaFX lib named %q", name)
	}
	delete(c.JavaFXLibs, name)
	return nil
}

// RemoveJavaFXModules deletes a jmods directory entry.
func (c *Configuration) RemoveJavaFXModules(name string) error {
	if _, ok := c.JavaFXModules[name]; !ok {
		return errs.NotFound(nil, "no JavaFX modules named %q", name)
	}
	delete(c.JavaFXModules, name)
	return nil
}

// Libs lists the lib directories sorted by name.
func (c *Configuration) Libs() []NamedDirectory {
	return sorted(c.JavaFXLibs)
}

// Modules lists the jmods directories sorted by name.
func (c *Configuration) Modules() []NamedDirectory {
	return sorted(c.JavaFXModules)
}

func sorted(m map[string]string) []NamedDirectory {
	out := make([]NamedDirectory, 0, len(m))
	for name, path := range m {
		out = append(out, NamedDirectory{Name: name, Path: path})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
