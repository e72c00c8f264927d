// Package jsonfile reads and writes the JSON documents jpackfx keeps under
// its base directory.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/gofrs/flock"
	"github.com/provide-io/jpackfx/pkg/errs"
)

const (
	// DirPerms is used for directories created on first save.
	DirPerms = 0o755
	// FilePerms is used for the written documents.
	FilePerms = 0o644
)

// Read decodes the JSON document at path into v. A missing file is
// ErrNotFound; unreadable or undecodable content is ErrBadFile.
func Read(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errs.NotFound(err, "reading %s", path)
		}
		return errs.BadFile(err, "reading %s", path)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return errs.BadFile(nil, "%s is empty", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errs.BadFile(err, "decoding %s", path)
	}
	return nil
}

// Write encodes v as indented UTF-8 JSON and overwrites path, creating the
// parent directories on first use. Concurrent writers of the same path are
// serialized through a sibling .lock file. The write itself is a plain
// overwrite, not an atomic replace.
func Write(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errs.CouldNotSave(err, "encoding %s", filepath.Base(path))
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), DirPerms); err != nil {
		return errs.CouldNotSave(err, "creating directory for %s", path)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return errs.CouldNotSave(err, "locking %s", path)
	}
	defer lock.Unlock()

	if err := os.WriteFile(path, data, FilePerms); err != nil {
		return errs.CouldNotSave(err, "writing %s", path)
	}
	return nil
}
