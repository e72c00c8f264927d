package jdk

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/provide-io/jpackfx/pkg/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersionOutput(t *testing.T) {
	testCases := []struct {
		name    string
		lines   []string
		want    string
		feature int
	}{
		{
			name:    "openjdk 17",
			lines:   []string{`openjdk version "17.0.2" 2022-01-18`, "OpenJDK Runtime Environment (build 17.0.2+8-86)"},
			want:    "17.0.2",
			feature: 17,
		},
		{
			name:    "legacy 1.8",
			lines:   []string{`java version "1.8.0_292"`},
			want:    "1.8.0",
			feature: 8,
		},
		{
			name:    "jpackage bare version",
			lines:   []string{"14.0.1"},
			want:    "14.0.1",
			feature: 14,
		},
		{
			name:    "early access",
			lines:   []string{"Picked up JAVA_TOOL_OPTIONS: -Dx=y", `openjdk version "21-ea" 2023-09-19`},
			want:    "21.0.0-ea",
			feature: 21,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := ParseVersionOutput(tc.lines)
			require.NoError(t, err)
			assert.Equal(t, tc.want, v.String())
			assert.Equal(t, tc.feature, FeatureRelease(v))
		})
	}

	_, err := ParseVersionOutput([]string{"Error: could not find java.dll"})
	assert.True(t, errors.Is(err, errs.ErrProcessing))
}

type scriptedRunner struct {
	out  *process.Output
	argv []string
}

func (r *scriptedRunner) Run(ctx context.Context, cmd *process.Command, timeoutSecs int) (*process.Output, error) {
	r.argv = cmd.Argv()
	return r.out, nil
}

func TestProbeVersion(t *testing.T) {
	root := fakeJDK(t, Linux, "java")
	j, err := New("jdk", root, Linux)
	require.NoError(t, err)

	runner := &scriptedRunner{out: &process.Output{Succeeded: true, Stderr: []string{`openjdk version "16.0.1" 2021-04-20`}}}
	v, err := j.ProbeVersion(context.Background(), runner)
	require.NoError(t, err)
	assert.Equal(t, "16.0.1", v.String())
	assert.Equal(t, []string{filepath.Join(root, "bin", "java"), "-version"}, runner.argv)

	silent := &scriptedRunner{out: &process.Output{Succeeded: true}}
	_, err = j.ProbeVersion(context.Background(), silent)
	assert.True(t, errors.Is(err, errs.ErrProcessing))
}

func TestSuggestName(t *testing.T) {
	root := filepath.Join(t.TempDir(), "zulu-17.jdk")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Contents"), 0o755))

	assert.Equal(t, "zulu-17", SuggestName(root, OSX))

	plistDoc := `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleName</key>
	<string>Zulu 17</string>
	<key>CFBundleIdentifier</key>
	<string>com.azul.zulu.17</string>
	<key>JavaVM</key>
	<dict>
		<key>JVMVersion</key>
		<string>17.0.2</string>
		<key>JVMVendor</key>
		<string>Azul Systems, Inc.</string>
	</dict>
</dict>
</plist>`
	require.NoError(t, os.WriteFile(filepath.Join(root, "Contents", "Info.plist"), []byte(plistDoc), 0o644))

	info, err := ReadBundleInfo(root)
	require.NoError(t, err)
	assert.Equal(t, "com.azul.zulu.17", info.Identifier)
	assert.Equal(t, "Azul Systems, Inc.", info.JavaVM.Vendor)
	assert.Equal(t, "Zulu 17 17.0.2", SuggestName(root, OSX))
	assert.Equal(t, "zulu-17", SuggestName(root, Linux))
}
