package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/provide-io/jpackfx/pkg/jdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	logger := hclog.New(&hclog.LoggerOptions{Name: t.Name(), Level: hclog.Trace})
	return NewStore(filepath.Join(t.TempDir(), "base", "configuration.json"), logger)
}

func TestSaveLoadSingleJDKAndLib(t *testing.T) {
	store := testStore(t)

	j, err := jdk.Restore("jdk1", "/opt/jdk14", jdk.OSX)
	require.NoError(t, err)

	c := New()
	require.NoError(t, c.AddJDK(j))
	require.NoError(t, c.AddJavaFXLib("fx14", "/opt/javafx-sdk-14/lib"))
	require.NoError(t, store.Save(c))

	loaded, err := store.Load()
	require.NoError(t, err)

	require.Len(t, loaded.JDKs, 1)
	require.Len(t, loaded.JavaFXLibs, 1)
	assert.Empty(t, loaded.JavaFXModules)

	got, err := loaded.JDK("jdk1")
	require.NoError(t, err)
	assert.Equal(t, "jdk1", got.Name())
	assert.Equal(t, "/opt/jdk14", got.Path())
	assert.Equal(t, jdk.OSX, got.OperatingSystem())
	assert.True(t, j.Equal(got))

	assert.Equal(t, []NamedDirectory{{Name: "fx14", Path: "/opt/javafx-sdk-14/lib"}}, loaded.Libs())
}

func TestRoundTripFullConfiguration(t *testing.T) {
	store := testStore(t)

	c := New()
	for _, tc := range []struct {
		name   string
		path   string
		system jdk.OperatingSystem
	}{
		{"temurin-17", "/usr/lib/jvm/temurin-17", jdk.Linux},
		{"zulu-17", "/Library/Java/JavaVirtualMachines/zulu-17.jdk", jdk.OSX},
		{"ms-17", `C:\Program Files\Microsoft\jdk-17`, jdk.Windows},
	} {
		j, err := jdk.Restore(tc.name, tc.path, tc.system)
		require.NoError(t, err)
		require.NoError(t, c.AddJDK(j))
	}
	require.NoError(t, c.AddJavaFXLib("fx17", "/opt/javafx-sdk-17/lib"))
	require.NoError(t, c.AddJavaFXModules("fx17-mods", "/opt/javafx-jmods-17"))
	require.NoError(t, c.AddJavaFXModules("fx21-mods", "/opt/javafx-jmods-21"))
	require.NoError(t, store.Save(c))

	loaded, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, c.JDKNames(), loaded.JDKNames())
	for _, name := range c.JDKNames() {
		assert.True(t, c.JDKs[name].Equal(loaded.JDKs[name]), name)
		assert.Equal(t, name, loaded.JDKs[name].Name())
	}
	assert.Equal(t, c.JavaFXLibs, loaded.JavaFXLibs)
	assert.Equal(t, c.JavaFXModules, loaded.JavaFXModules)
}

func TestLoadErrors(t *testing.T) {
	store := testStore(t)

	_, err := store.Load()
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"jdks": {"x": {"name":"x","path":"/x","operating-system":"AmigaOS"}}}`), 0o644))
	_, err = store.Load()
	assert.True(t, errors.Is(err, errs.ErrBadFile), "got %v", err)

	require.NoError(t, os.WriteFile(store.Path(), []byte(`not json`), 0o644))
	_, err = store.Load()
	assert.True(t, errors.Is(err, errs.ErrBadFile))

	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"jdks": {"x": null}}`), 0o644))
	_, err = store.Load()
	assert.True(t, errors.Is(err, errs.ErrBadFile))
}

func TestLoadOrDefault(t *testing.T) {
	store := testStore(t)

	c := store.LoadOrDefault()
	require.NotNil(t, c)
	assert.Empty(t, c.JDKs)
	assert.NotNil(t, c.JavaFXLibs)

	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{`), 0o644))
	c = store.LoadOrDefault()
	assert.Empty(t, c.JDKs)
}

func TestLoadMissingSectionsAndRenamedKey(t *testing.T) {
	store := testStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"jdks": {"label": {"name":"old","path":"/opt/j","operating-system":"Linux"}}}`), 0o644))

	c, err := store.Load()
	require.NoError(t, err)
	assert.NotNil(t, c.JavaFXLibs)
	assert.NotNil(t, c.JavaFXModules)
	assert.Equal(t, "label", c.JDKs["label"].Name())
}

func TestConfigurationLookups(t *testing.T) {
	c := New()

	_, err := c.JDK("missing")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	assert.True(t, errors.Is(c.RemoveJDK("missing"), errs.ErrNotFound))
	assert.True(t, errors.Is(c.RemoveJavaFXLib("missing"), errs.ErrNotFound))
	assert.True(t, errors.Is(c.RemoveJavaFXModules("missing"), errs.ErrNotFound))
	_, err = c.JavaFXModule("missing")
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	assert.True(t, errors.Is(c.AddJavaFXLib(" ", "/x"), errs.ErrValidation))

	root := t.TempDir()
	a, err := jdk.New("a", root, jdk.Linux)
	require.NoError(t, err)
	require.NoError(t, c.AddJDK(a))

	same, err := jdk.Restore("other label", root, jdk.Linux)
	require.NoError(t, err)
	found, ok := c.FindJDK(same)
	require.True(t, ok)
	assert.Equal(t, "a", found.Name())

	require.NoError(t, c.AddJavaFXLib("b", "/b"))
	require.NoError(t, c.AddJavaFXLib("a", "/a"))
	assert.Equal(t, []NamedDirectory{{"a", "/a"}, {"b", "/b"}}, c.Libs())

	require.NoError(t, c.RemoveJDK("a"))
	assert.Empty(t, c.JDKNames())
}
