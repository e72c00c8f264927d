package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Environment variables controlling the root logger.
const (
	EnvLogLevel = "JPACKFX_LOG_LEVEL"
	EnvJSONLog  = "JPACKFX_JSON_LOG"
	EnvLogPath  = "JPACKFX_LOG_PATH"
)

// LogFileName is the log kept in the logs directory when EnvLogPath is unset.
const LogFileName = "jpackfx.log"

// OpenLogFile opens $JPACKFX_LOG_PATH, or LogFileName in dir, for appending.
// The caller closes it.
func OpenLogFile(dir string) (*os.File, error) {
	path := os.Getenv(EnvLogPath)
	if path == "" {
		path = filepath.Join(dir, LogFileName)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// NewLogger creates a new hclog logger with standard settings.
// A level of the form "json:<level>" forces JSON output.
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	jsonFormat := os.Getenv(EnvJSONLog) == "1"
	if strings.HasPrefix(level, "json") {
		jsonFormat = true
		level = strings.TrimPrefix(strings.TrimPrefix(level, "json"), ":")
		if level == "" {
			level = "info"
		}
	}

	// Add prefix for non-JSON output
	if !jsonFormat {
		output = NewPrefixWriter("☕ ", output)
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts)
}

// GetLogLevel returns the configured log level, preferring an explicit value
// over the environment.
func GetLogLevel(explicit string) string {
	if explicit != "" {
		return explicit
	}
	level := os.Getenv(EnvLogLevel)
	if level == "" {
		level = "warn"
	}
	return level
}
