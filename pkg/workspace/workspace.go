// Package workspace tracks the current project and the directories the user
// last worked in. It is persisted to workspace.json and is never essential:
// every load failure degrades to an empty workspace.
package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/provide-io/jpackfx/pkg/project"
)

// Directory categories remembered across sessions.
const (
	CategoryJDK       = "jdk"
	CategoryJavaFX    = "javafx"
	CategoryProject   = "project"
	CategoryIcon      = "icon"
	CategoryMainJar   = "main-jar"
	CategoryOutput    = "output"
	CategoryArchive   = "archive"
	CategoryImageFile = "image-file"
)

// Workspace references the current project by file path. CurrentProject is
// the loaded copy and is not serialized.
type Workspace struct {
	CurrentProjectPath string                  `json:"current-project,omitempty"`
	CurrentProject     *project.InstallProject `json:"-"`
	ProjectHistory     map[string]string       `json:"project-history"`
	History            map[string]string       `json:"history"`
}

// New returns an empty workspace.
func New() *Workspace {
	return &Workspace{
		ProjectHistory: map[string]string{},
		History:        map[string]string{},
	}
}

func (w *Workspace) normalize() {
	if w.ProjectHistory == nil {
		w.ProjectHistory = map[string]string{}
	}
	if w.History == nil {
		w.History = map[string]string{}
	}
}

// SetCurrent makes p the current project, stored at path, and records it in
// the project history. A nil project clears the selection.
func (w *Workspace) SetCurrent(p *project.InstallProject, path string) {
	w.normalize()
	if p == nil {
		w.CurrentProject = nil
		w.CurrentProjectPath = ""
		return
	}
	w.CurrentProject = p
	w.CurrentProjectPath = path
	w.ProjectHistory[p.Name] = path
	w.History[CategoryProject] = filepath.Dir(path)
}

// ClearCurrent drops the current project selection.
func (w *Workspace) ClearCurrent() {
	w.SetCurrent(nil, "")
}

// RememberDirectory records dir as the last one used for category. An
// existing regular file records its parent directory.
func (w *Workspace) RememberDirectory(category, dir string) {
	w.normalize()
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	w.History[category] = dir
}

// LastDirectory returns the last directory used for category.
func (w *Workspace) LastDirectory(category string) (string, bool) {
	dir, ok := w.History[category]
	return dir, ok
}

// ProjectPath returns the recorded file of a previously used project.
func (w *Workspace) ProjectPath(name string) (string, bool) {
	path, ok := w.ProjectHistory[name]
	return path, ok
}
