package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/provide-io/jpackfx/pkg/jdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	logger := hclog.New(&hclog.LoggerOptions{Name: t.Name(), Level: hclog.Trace})
	return NewStore(filepath.Join(t.TempDir(), "projects"), logger)
}

func sampleProject(t *testing.T) *InstallProject {
	t.Helper()
	install, err := jdk.Restore("runtime", "/opt/jdk17", jdk.Linux)
	require.NoError(t, err)
	packager, err := jdk.Restore("packager", "/opt/jdk21", jdk.Linux)
	require.NoError(t, err)
	structure, err := NewSimpleStructure([]string{"lib/a.jar", " lib/b.jar "}, []string{"config/"}, "app.jar")
	require.NoError(t, err)

	p := New("Demo App")
	p.Vendor = "Example"
	p.InstallerType = TypeDEB
	p.InstallJDK = install
	p.PackageJDK = packager
	p.ModulePath = []string{"/opt/javafx/lib"}
	p.AddModules = []string{"javafx.controls"}
	p.MainJar = "app.jar"
	p.MainClass = "com.example.Main"
	p.JavaOptions = `-Xmx512m "-Dapp.name=Demo App"`
	p.Linux.Shortcut = true
	p.ImageStructure = structure
	return p
}

func TestNewDefaults(t *testing.T) {
	p := New("  demo ")
	assert.Equal(t, "demo", p.Name)
	assert.Equal(t, "1.0.0", p.Version)
	assert.Equal(t, TypeAppImage, p.InstallerType)
	_, err := uuid.Parse(p.Windows.UpgradeUUID)
	assert.NoError(t, err)
	require.NotNil(t, p.ImageStructure)
	assert.Equal(t, SimpleKind, p.ImageStructure.Kind())
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name  string
		valid bool
	}{
		{"demo", true},
		{"Demo App", true},
		{"", false},
		{"   ", false},
		{"a/b", false},
		{`a\b`, false},
		{"..", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := (&InstallProject{Name: tc.name}).Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, errs.ErrValidation))
			}
		})
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := testStore(t)
	p := sampleProject(t)

	path, err := store.Save(p)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir(), "Demo App.json"), path)

	loaded, err := store.Load("Demo App")
	require.NoError(t, err)
	assert.True(t, p.Equal(loaded))
	assert.Equal(t, []string{"lib/a.jar", "lib/b.jar"}, loaded.ImageStructure.Files())
	assert.Equal(t, []string{"config"}, loaded.ImageStructure.Directories())

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"Demo App"}, names)
}

func TestStoreRoundTripEmptyLists(t *testing.T) {
	store := testStore(t)
	p := New("Demo")
	p.ModulePath = []string{}
	p.ClassPath = []string{}
	p.AddModules = []string{}

	_, err := store.Save(p)
	require.NoError(t, err)
	loaded, err := store.Load("Demo")
	require.NoError(t, err)
	assert.Nil(t, loaded.ModulePath)
	assert.True(t, p.Equal(loaded))
	assert.True(t, loaded.Equal(p))

	p.AddModules = []string{"javafx.controls"}
	assert.False(t, p.Equal(loaded))
}

func TestSaveRejectsBlankName(t *testing.T) {
	store := testStore(t)
	_, err := store.Save(New(" "))
	assert.True(t, errors.Is(err, errs.ErrValidation))

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLoadErrors(t *testing.T) {
	store := testStore(t)

	_, err := store.Load("missing")
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	require.NoError(t, os.MkdirAll(store.Dir(), 0o755))
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(store.Path(name), []byte(body), 0o644))
	}

	write("garbage", "{not json")
	_, err = store.Load("garbage")
	assert.True(t, errors.Is(err, errs.ErrBadFile))

	write("unknown", `{"name":"unknown","image-structure":{"type":"Layered"}}`)
	_, err = store.Load("unknown")
	assert.True(t, errors.Is(err, errs.ErrBadFile))

	write("blank-entry", `{"name":"blank-entry","image-structure":{"type":"Simple","files":["  "]}}`)
	_, err = store.Load("blank-entry")
	assert.True(t, errors.Is(err, errs.ErrBadFile))

	write("nameless", `{"version":"1.0"}`)
	_, err = store.Load("nameless")
	assert.True(t, errors.Is(err, errs.ErrBadFile))
}

func TestStructureDiscriminatorInJSON(t *testing.T) {
	data, err := json.Marshal(sampleProject(t))
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	var structure map[string]interface{}
	require.NoError(t, json.Unmarshal(doc["image-structure"], &structure))
	assert.Equal(t, "Simple", structure["type"])
	assert.Equal(t, "app.jar", structure["main-jar"])
}

func TestEqualComparesJDKIdentity(t *testing.T) {
	a := sampleProject(t)
	b := sampleProject(t)
	b.Windows.UpgradeUUID = a.Windows.UpgradeUUID
	b.InstallJDK = b.InstallJDK.WithName("renamed")
	assert.True(t, a.Equal(b))

	b.Version = "2.0.0"
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))
}
