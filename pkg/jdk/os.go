package jdk

import (
	"runtime"
	"strings"

	"github.com/provide-io/jpackfx/pkg/errs"
)

// OperatingSystem identifies the platform a JDK was built for.
type OperatingSystem string

const (
	Windows OperatingSystem = "Windows"
	OSX     OperatingSystem = "OSX"
	Linux   OperatingSystem = "Linux"
)

// ParseOperatingSystem accepts the persisted names plus common GOOS aliases.
func ParseOperatingSystem(s string) (OperatingSystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "windows", "win":
		return Windows, nil
	case "osx", "macos", "mac", "darwin":
		return OSX, nil
	case "linux":
		return Linux, nil
	}
	return "", errs.Validation("unknown operating system %q", s)
}

// Current returns the operating system jpackfx is running on.
func Current() OperatingSystem {
	switch runtime.GOOS {
	case "windows":
		return Windows
	case "darwin":
		return OSX
	default:
		return Linux
	}
}

func (o OperatingSystem) String() string {
	return string(o)
}
