package process

import (
	"regexp"
	"strings"
)

// noisePattern matches stderr lines that JDK tools print on successful runs
// (illegal-access and preview warnings, a bare "null" from jpackage on some
// vendors, and Windows Defender scan notices).
var noisePattern = regexp.MustCompile(`WARNING|null|Windows Defender`)

// Output is what a finished (or timed out) process produced.
type Output struct {
	// Succeeded is the raw exit status as reported by the OS.
	Succeeded bool
	// TimedOut is set when the timeout elapsed and the process was killed;
	// Stdout and Stderr then hold whatever was captured until then.
	TimedOut bool
	ExitCode int
	Stdout   []string
	Stderr   []string
}

// Errors returns the stderr lines that are not known benign noise.
func (o *Output) Errors() []string {
	var errs []string
	for _, line := range o.Stderr {
		if strings.TrimSpace(line) == "" || noisePattern.MatchString(line) {
			continue
		}
		errs = append(errs, line)
	}
	return errs
}

// HasErrors reports whether stderr contains any line besides known noise.
func (o *Output) HasErrors() bool {
	return len(o.Errors()) > 0
}

// Success holds only when the OS reports success and no error lines remain.
func (o *Output) Success() bool {
	return o.Succeeded && !o.HasErrors()
}

// Lines returns stdout followed by stderr.
func (o *Output) Lines() []string {
	lines := make([]string, 0, len(o.Stdout)+len(o.Stderr))
	lines = append(lines, o.Stdout...)
	return append(lines, o.Stderr...)
}
