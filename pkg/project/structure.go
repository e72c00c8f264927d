package project

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/provide-io/jpackfx/pkg/errs"
)

// ImageStructure describes what goes into the jpackage input directory.
// The family is closed; every variant registers a decoder under its Kind.
type ImageStructure interface {
	Kind() string
	Files() []string
	Directories() []string
	MainJar() string
	// Stage copies the structure's files and directories into dir.
	Stage(dir string) error
}

type structureDecoder func(data []byte) (ImageStructure, error)

// structureKinds is the dispatch table for the type discriminator.
var structureKinds = map[string]structureDecoder{}

func registerStructure(kind string, decode structureDecoder) {
	structureKinds[kind] = decode
}

func init() {
	registerStructure(SimpleKind, decodeSimple)
}

// SimpleKind is the discriminator of SimpleStructure.
const SimpleKind = "Simple"

// SimpleStructure is a flat list of files and directories plus the main jar.
type SimpleStructure struct {
	files       []string
	directories []string
	mainJar     string
}

// NewSimpleStructure trims every name and rejects names that are empty after
// trimming. Duplicates collapse.
func NewSimpleStructure(files, directories []string, mainJar string) (*SimpleStructure, error) {
	fs, err := trimmedSet("file", files, func(s string) string { return s })
	if err != nil {
		return nil, err
	}
	ds, err := trimmedSet("directory", directories, filepath.Clean)
	if err != nil {
		return nil, err
	}
	return &SimpleStructure{
		files:       fs,
		directories: ds,
		mainJar:     strings.TrimSpace(mainJar),
	}, nil
}

func trimmedSet(what string, names []string, normalize func(string) string) ([]string, error) {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return nil, errs.Validation("image structure %s name is empty", what)
		}
		set[normalize(n)] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out, nil
}

func (s *SimpleStructure) Kind() string          { return SimpleKind }
func (s *SimpleStructure) Files() []string       { return append([]string(nil), s.files...) }
func (s *SimpleStructure) Directories() []string { return append([]string(nil), s.directories...) }
func (s *SimpleStructure) MainJar() string       { return s.mainJar }

// Stage copies the main jar, files and directories into dir, keeping base
// names.
func (s *SimpleStructure) Stage(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Processing(err, "creating input directory %s", dir)
	}
	files := s.files
	if s.mainJar != "" {
		files = append([]string{s.mainJar}, files...)
	}
	for _, f := range files {
		if err := copyFile(f, filepath.Join(dir, filepath.Base(f))); err != nil {
			return errs.Processing(err, "staging %s", f)
		}
	}
	for _, d := range s.directories {
		if err := copyDirAll(d, filepath.Join(dir, filepath.Base(d))); err != nil {
			return errs.Processing(err, "staging %s", d)
		}
	}
	return nil
}

type simpleJSON struct {
	Type        string   `json:"type"`
	Files       []string `json:"files"`
	Directories []string `json:"directories"`
	MainJar     string   `json:"main-jar,omitempty"`
}

func (s *SimpleStructure) MarshalJSON() ([]byte, error) {
	return json.Marshal(simpleJSON{
		Type:        SimpleKind,
		Files:       s.Files(),
		Directories: s.Directories(),
		MainJar:     s.mainJar,
	})
}

func decodeSimple(data []byte) (ImageStructure, error) {
	var raw simpleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errs.BadFile(err, "decoding image structure")
	}
	s, err := NewSimpleStructure(raw.Files, raw.Directories, raw.MainJar)
	if err != nil {
		return nil, errs.BadFile(err, "invalid image structure")
	}
	return s, nil
}

// decodeStructure dispatches on the "type" discriminator.
func decodeStructure(data []byte) (ImageStructure, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, errs.BadFile(err, "decoding image structure")
	}
	decode, ok := structureKinds[head.Type]
	if !ok {
		return nil, errs.BadFile(nil, "unknown image structure type %q", head.Type)
	}
	return decode(data)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func copyDirAll(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}
