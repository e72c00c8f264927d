// Package jdk models an installed Java Development Kit and resolves the
// java, jpackage and jdeps executables inside it.
package jdk

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/provide-io/jpackfx/pkg/errs"
)

const (
	javaTool     = "java"
	jpackageTool = "jpackage"
	jdepsTool    = "jdeps"
)

// JDK is a named JDK installation for one operating system. The name is a
// display label only; identity is the (operating system, canonical root) pair.
type JDK struct {
	name   string
	root   string
	os     OperatingSystem
	layout layout
}

// New creates a JDK rooted at root. The root directory must exist.
func New(name, root string, system OperatingSystem) (*JDK, error) {
	j, err := Restore(name, root, system)
	if err != nil {
		return nil, err
	}
	if err := j.Validate(); err != nil {
		return nil, err
	}
	return j, nil
}

// Restore creates a JDK without checking the filesystem. Persisted
// configurations use it so that a removed JDK does not make the whole
// configuration unreadable.
func Restore(name, root string, system OperatingSystem) (*JDK, error) {
	l, ok := layouts[system]
	if !ok {
		return nil, errs.Validation("unsupported operating system %q", system)
	}
	return &JDK{name: name, root: root, os: system, layout: l}, nil
}

// Validate checks that the root directory exists.
func (j *JDK) Validate() error {
	info, err := os.Stat(j.root)
	if err != nil {
		return errs.NotFound(err, "JDK root %s", j.root)
	}
	if !info.IsDir() {
		return errs.NotFound(nil, "JDK root %s is not a directory", j.root)
	}
	return nil
}

func (j *JDK) Name() string                     { return j.name }
func (j *JDK) Path() string                     { return j.root }
func (j *JDK) OperatingSystem() OperatingSystem { return j.os }

// BinDir returns the directory holding the tool executables.
func (j *JDK) BinDir() string {
	return j.layout.binDir(j.root)
}

func (j *JDK) tool(name string) (string, error) {
	path := filepath.Join(j.BinDir(), j.layout.executable(name))
	info, err := os.Stat(path)
	if err != nil {
		return "", errs.NotFound(err, "%s in JDK %q", name, j.name)
	}
	if info.IsDir() {
		return "", errs.NotFound(nil, "%s in JDK %q is a directory", name, j.name)
	}
	return path, nil
}

// JavaExecutable resolves the java launcher.
func (j *JDK) JavaExecutable() (string, error) { return j.tool(javaTool) }

// PackageExecutable resolves jpackage.
func (j *JDK) PackageExecutable() (string, error) { return j.tool(jpackageTool) }

// JdepsExecutable resolves jdeps.
func (j *JDK) JdepsExecutable() (string, error) { return j.tool(jdepsTool) }

// SupportsJPackage reports whether the JDK ships jpackage.
func (j *JDK) SupportsJPackage() bool {
	_, err := j.PackageExecutable()
	return err == nil
}

// Key is the identity used for equality and as a hash key.
func (j *JDK) Key() string {
	return string(j.os) + "|" + canonical(j.root)
}

// Equal reports whether both refer to the same OS and root directory.
func (j *JDK) Equal(other *JDK) bool {
	if j == nil || other == nil {
		return j == other
	}
	return j.Key() == other.Key()
}

// WithName returns a copy carrying a different label.
func (j *JDK) WithName(name string) *JDK {
	c := *j
	c.name = name
	return &c
}

func canonical(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return filepath.Clean(path)
}

type jdkJSON struct {
	Name            string `json:"name"`
	Path            string `json:"path"`
	OperatingSystem string `json:"operating-system"`
}

// MarshalJSON writes the JDK with its operating-system discriminator.
func (j *JDK) MarshalJSON() ([]byte, error) {
	return json.Marshal(jdkJSON{Name: j.name, Path: j.root, OperatingSystem: string(j.os)})
}

// UnmarshalJSON dispatches on the operating-system discriminator; unknown or
// missing values are reported as ErrBadFile.
func (j *JDK) UnmarshalJSON(data []byte) error {
	var raw jdkJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errs.BadFile(err, "decoding JDK entry")
	}
	system := OperatingSystem(raw.OperatingSystem)
	l, ok := layouts[system]
	if !ok {
		return errs.BadFile(errors.Newf("operating-system %q", raw.OperatingSystem), "unknown JDK type for %q", raw.Name)
	}
	*j = JDK{name: raw.Name, root: raw.Path, os: system, layout: l}
	return nil
}
