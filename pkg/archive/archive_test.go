package archive

import (
	"archive/tar"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "Demo")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bin"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib", "app"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bin", "Demo"), []byte("#!/bin/sh\necho demo\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib", "app", "Demo.cfg"), []byte("[Application]\n"), 0o644))
	return root
}

func TestParseChain(t *testing.T) {
	testCases := []struct {
		input string
		want  string
		ext   string
	}{
		{"tar", "tar", ".tar"},
		{"tar.gz", "tar|gzip", ".tar.gz"},
		{"TGZ", "tar|gzip", ".tar.gz"},
		{"tar.bz2", "tar|bzip2", ".tar.bz2"},
		{"tar|bzip2|gzip", "tar|bzip2|gzip", ".tar.bz2.gz"},
		{"", "tar|gzip", ".tar.gz"},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			c, err := ParseChain(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.String())
			assert.Equal(t, tc.ext, c.Extension())
		})
	}

	for _, bad := range []string{"zip", "gzip|tar", "tar|xz"} {
		_, err := ParseChain(bad)
		assert.True(t, errors.Is(err, errs.ErrValidation), bad)
	}
}

func TestCreateExtractRoundTrip(t *testing.T) {
	for _, format := range []string{"tar", "tar.gz", "tar.bz2"} {
		t.Run(format, func(t *testing.T) {
			src := imageTree(t)
			chain, err := ParseChain(format)
			require.NoError(t, err)

			dest := filepath.Join(t.TempDir(), "out", "Demo"+chain.Extension())
			require.NoError(t, Create(src, dest, chain))

			out := t.TempDir()
			require.NoError(t, Extract(dest, out, chain))

			data, err := os.ReadFile(filepath.Join(out, "Demo", "bin", "Demo"))
			require.NoError(t, err)
			assert.Equal(t, "#!/bin/sh\necho demo\n", string(data))

			data, err = os.ReadFile(filepath.Join(out, "Demo", "lib", "app", "Demo.cfg"))
			require.NoError(t, err)
			assert.Equal(t, "[Application]\n", string(data))

			if runtime.GOOS != "windows" {
				info, err := os.Stat(filepath.Join(out, "Demo", "bin", "Demo"))
				require.NoError(t, err)
				assert.NotZero(t, info.Mode().Perm()&0o100)
			}
		})
	}
}

func TestCreateErrors(t *testing.T) {
	chain, err := ParseChain("tar")
	require.NoError(t, err)

	err = Create(filepath.Join(t.TempDir(), "missing"), filepath.Join(t.TempDir(), "a.tar"), chain)
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	err = Create(file, filepath.Join(t.TempDir(), "a.tar"), chain)
	assert.True(t, errors.Is(err, errs.ErrValidation))
}

func TestExtractWrongCompression(t *testing.T) {
	src := imageTree(t)
	plain, err := ParseChain("tar")
	require.NoError(t, err)
	dest := filepath.Join(t.TempDir(), "Demo.tar")
	require.NoError(t, Create(src, dest, plain))

	gz, err := ParseChain("tar.gz")
	require.NoError(t, err)
	err = Extract(dest, t.TempDir(), gz)
	assert.True(t, errors.Is(err, errs.ErrProcessing))
}

func writeTar(t *testing.T, headers ...*tar.Header) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crafted.tar")
	f, err := os.Create(path)
	require.NoError(t, err)
	tw := tar.NewWriter(f)
	for _, hdr := range headers {
		if hdr.Typeflag == tar.TypeReg {
			hdr.Size = int64(len("payload"))
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if hdr.Typeflag == tar.TypeReg {
			_, err := tw.Write([]byte("payload"))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestExtractRejectsEscapes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}
	outside := t.TempDir()
	plain, err := ParseChain("tar")
	require.NoError(t, err)

	testCases := []struct {
		name    string
		headers []*tar.Header
	}{
		{"dot dot entry", []*tar.Header{
			{Name: "../owned.txt", Typeflag: tar.TypeReg, Mode: 0o644},
		}},
		{"absolute link then write through it", []*tar.Header{
			{Name: "esc", Typeflag: tar.TypeSymlink, Linkname: outside},
			{Name: "esc/owned.txt", Typeflag: tar.TypeReg, Mode: 0o644},
		}},
		{"relative link leaving the root", []*tar.Header{
			{Name: "Demo/esc", Typeflag: tar.TypeSymlink, Linkname: "../../" + filepath.Base(outside)},
		}},
		{"write through an inner link", []*tar.Header{
			{Name: "Demo/lib", Typeflag: tar.TypeDir, Mode: 0o755},
			{Name: "Demo/alias", Typeflag: tar.TypeSymlink, Linkname: "lib"},
			{Name: "Demo/alias/owned.txt", Typeflag: tar.TypeReg, Mode: 0o644},
		}},
		{"overwrite a link", []*tar.Header{
			{Name: "Demo/target.txt", Typeflag: tar.TypeReg, Mode: 0o644},
			{Name: "Demo/link.txt", Typeflag: tar.TypeSymlink, Linkname: "target.txt"},
			{Name: "Demo/link.txt", Typeflag: tar.TypeReg, Mode: 0o644},
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src := writeTar(t, tc.headers...)
			dest := filepath.Join(t.TempDir(), "out")
			err := Extract(src, dest, plain)
			assert.True(t, errors.Is(err, errs.ErrBadFile), "got %v", err)
			assert.NoFileExists(t, filepath.Join(outside, "owned.txt"))
		})
	}
}

func TestExtractKeepsInnerLinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}
	plain, err := ParseChain("tar")
	require.NoError(t, err)
	src := writeTar(t,
		&tar.Header{Name: "Demo/bin/Demo", Typeflag: tar.TypeReg, Mode: 0o755},
		&tar.Header{Name: "Demo/launcher", Typeflag: tar.TypeSymlink, Linkname: "bin/Demo"},
	)
	dest := t.TempDir()
	require.NoError(t, Extract(src, dest, plain))

	link, err := os.Readlink(filepath.Join(dest, "Demo", "launcher"))
	require.NoError(t, err)
	assert.Equal(t, "bin/Demo", link)
	data, err := os.ReadFile(filepath.Join(dest, "Demo", "launcher"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestChainFor(t *testing.T) {
	testCases := map[string]string{
		"Demo-1.0.tar":     "tar",
		"Demo-1.0.tar.gz":  "tar|gzip",
		"Demo.TGZ":         "tar|gzip",
		"Demo-1.0.tar.bz2": "tar|bzip2",
		"Demo.tbz2":        "tar|bzip2",
		"Demo.zip":         "tar|gzip",
	}
	for path, want := range testCases {
		c, err := ChainFor(path)
		require.NoError(t, err)
		assert.Equal(t, want, c.String(), path)
	}
}
