package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixWriterBuffersPartialLines(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter("> ", &out)

	n, err := pw.Write([]byte("first line\nsecond "))
	assert.NoError(t, err)
	assert.Equal(t, 18, n)
	assert.Equal(t, "> first line\n", out.String())

	_, err = pw.Write([]byte("half\n"))
	assert.NoError(t, err)
	assert.Equal(t, "> first line\n> second half\n", out.String())
}

func TestGetLogLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	assert.Equal(t, "warn", GetLogLevel(""))

	t.Setenv(EnvLogLevel, "debug")
	assert.Equal(t, "debug", GetLogLevel(""))
	assert.Equal(t, "trace", GetLogLevel("trace"))
}

func TestNewLoggerWritesPrefixedLines(t *testing.T) {
	t.Setenv(EnvJSONLog, "")
	t.Setenv(EnvLogPath, "")

	var out bytes.Buffer
	logger := NewLogger("jpackfx-test", "info", &out)
	logger.Info("hello", "key", "value")
	logger.Debug("hidden")

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "☕ "), text)
	assert.Contains(t, text, "jpackfx-test: hello: key=value")
	assert.NotContains(t, text, "hidden")
}

func TestNewLoggerJSONLevel(t *testing.T) {
	t.Setenv(EnvLogPath, "")

	var out bytes.Buffer
	logger := NewLogger("jpackfx-test", "json:debug", &out)
	logger.Debug("structured")

	assert.Contains(t, out.String(), `"@message":"structured"`)
	assert.False(t, strings.HasPrefix(out.String(), "☕"))
}

func TestLineWriterFlushAndCRLF(t *testing.T) {
	var lines []string
	lw := NewLineWriter(func(line []byte) error {
		lines = append(lines, string(line))
		return nil
	})

	_, err := lw.Write([]byte("one\r\ntwo\nthr"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, lines)

	assert.NoError(t, lw.Flush())
	assert.Equal(t, []string{"one", "two", "thr"}, lines)

	assert.NoError(t, lw.Flush())
	assert.Len(t, lines, 3)
}

func TestOpenLogFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvLogPath, "")

	f, err := OpenLogFile(dir)
	require.NoError(t, err)
	logger := NewLogger("jpackfx-test", "info", io.MultiWriter(io.Discard, f))
	logger.Info("to file")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")

	custom := filepath.Join(t.TempDir(), "custom.log")
	t.Setenv(EnvLogPath, custom)
	f, err = OpenLogFile(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Equal(t, custom, f.Name())
	require.NoError(t, f.Close())

	t.Setenv(EnvLogPath, "")
	_, err = OpenLogFile(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
