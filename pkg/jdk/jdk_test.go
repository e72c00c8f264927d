package jdk

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeJDK creates a JDK directory tree holding the named tools.
func fakeJDK(t *testing.T, system OperatingSystem, tools ...string) string {
	t.Helper()
	root := t.TempDir()
	l := layouts[system]
	bin := l.binDir(root)
	require.NoError(t, os.MkdirAll(bin, 0o755))
	for _, tool := range tools {
		require.NoError(t, os.WriteFile(filepath.Join(bin, l.executable(tool)), []byte("#!/bin/sh\n"), 0o755))
	}
	return root
}

func TestNewRequiresExistingRoot(t *testing.T) {
	_, err := New("missing", filepath.Join(t.TempDir(), "nope"), Linux)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	_, err = New("bad os", t.TempDir(), OperatingSystem("BeOS"))
	assert.True(t, errors.Is(err, errs.ErrValidation))
}

func TestExecutableResolution(t *testing.T) {
	testCases := []struct {
		system OperatingSystem
		bin    []string
		exe    string
	}{
		{Linux, []string{"bin"}, "jpackage"},
		{OSX, []string{"Contents", "Home", "bin"}, "jpackage"},
		{Windows, []string{"bin"}, "jpackage.exe"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.system), func(t *testing.T) {
			root := fakeJDK(t, tc.system, "java", "jpackage", "jdeps")
			j, err := New("jdk", root, tc.system)
			require.NoError(t, err)

			path, err := j.PackageExecutable()
			require.NoError(t, err)
			want := filepath.Join(append(append([]string{root}, tc.bin...), tc.exe)...)
			assert.Equal(t, want, path)

			_, err = j.JavaExecutable()
			assert.NoError(t, err)
			_, err = j.JdepsExecutable()
			assert.NoError(t, err)
			assert.True(t, j.SupportsJPackage())
		})
	}
}

func TestMissingJPackage(t *testing.T) {
	root := fakeJDK(t, Linux, "java", "jdeps")
	j, err := New("jdk8", root, Linux)
	require.NoError(t, err)

	assert.False(t, j.SupportsJPackage())

	_, err = j.PackageExecutable()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestToolRemovedAfterConstruction(t *testing.T) {
	root := fakeJDK(t, Linux, "java")
	j, err := New("jdk", root, Linux)
	require.NoError(t, err)

	_, err = j.JavaExecutable()
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(root, "bin", "java")))
	_, err = j.JavaExecutable()
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestEqualityIgnoresName(t *testing.T) {
	root := t.TempDir()
	a, err := New("first", root, Linux)
	require.NoError(t, err)
	b, err := New("second", root+string(filepath.Separator), Linux)
	require.NoError(t, err)
	c, err := New("first", root, Windows)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))

	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(root, link); err == nil {
		d, err := New("linked", link, Linux)
		require.NoError(t, err)
		assert.True(t, a.Equal(d))
	}
}

func TestJSONRoundTrip(t *testing.T) {
	for _, system := range []OperatingSystem{Linux, OSX, Windows} {
		t.Run(string(system), func(t *testing.T) {
			j, err := Restore("jdk14", "/opt/jdk14", system)
			require.NoError(t, err)

			data, err := json.Marshal(j)
			require.NoError(t, err)
			assert.JSONEq(t, `{"name":"jdk14","path":"/opt/jdk14","operating-system":"`+string(system)+`"}`, string(data))

			var back JDK
			require.NoError(t, json.Unmarshal(data, &back))
			assert.True(t, j.Equal(&back))
			assert.Equal(t, "jdk14", back.Name())
			assert.Equal(t, system, back.OperatingSystem())
		})
	}
}

func TestJSONUnknownDiscriminator(t *testing.T) {
	for _, doc := range []string{
		`{"name":"x","path":"/opt/x","operating-system":"Solaris"}`,
		`{"name":"x","path":"/opt/x"}`,
	} {
		var j JDK
		err := json.Unmarshal([]byte(doc), &j)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrBadFile), "got %v", err)
	}
}

func TestParseOperatingSystem(t *testing.T) {
	for in, want := range map[string]OperatingSystem{
		"OSX": OSX, "macos": OSX, "darwin": OSX,
		"Windows": Windows, "win": Windows,
		"linux": Linux,
	} {
		got, err := ParseOperatingSystem(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseOperatingSystem("plan9")
	assert.True(t, errors.Is(err, errs.ErrValidation))
}
