// Package stamp records which project build produced an application image,
// so an installer build can tell whether the image it packages is current.
package stamp

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"
)

// FileName is the marker written next to the built image.
const FileName = ".jpackfx-build.json"

// Stamp describes one successful image build.
type Stamp struct {
	Timestamp time.Time `json:"timestamp"`
	Project   string    `json:"project"`
	Version   string    `json:"version"`
	Checksum  string    `json:"checksum"`
	// Settings digests everything else the image was built from.
	Settings string `json:"settings"`
}

// Checksum returns the hex SHA-256 of the file at path, or "" if it cannot
// be read.
func Checksum(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return ""
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Digest returns the hex SHA-256 of parts joined by newlines.
func Digest(parts ...string) string {
	h := sha256.New()
	for _, part := range parts {
		io.WriteString(h, part)
		io.WriteString(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Write records s in dir, setting its timestamp.
func Write(dir string, s Stamp) error {
	s.Timestamp = time.Now().UTC()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, FileName), data, 0o644)
}

// Read returns the stamp in dir.
func Read(dir string) (*Stamp, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}
	var s Stamp
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// IsCurrent reports whether the stamp in dir matches want and the image
// directory still exists. An empty want.Checksum is not compared.
func IsCurrent(dir, imagePath string, want Stamp) bool {
	s, err := Read(dir)
	if err != nil {
		return false
	}
	if s.Project != want.Project || s.Version != want.Version || s.Settings != want.Settings {
		return false
	}
	if want.Checksum != "" && s.Checksum != want.Checksum {
		return false
	}
	if info, err := os.Stat(imagePath); err != nil || !info.IsDir() {
		return false
	}
	return true
}

// Clear removes the stamp from dir.
func Clear(dir string) error {
	err := os.Remove(filepath.Join(dir, FileName))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
