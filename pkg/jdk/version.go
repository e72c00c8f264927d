package jdk

import (
	"context"
	"regexp"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/provide-io/jpackfx/pkg/process"
)

// ProbeTimeout bounds version probes, in seconds.
const ProbeTimeout = 30

var quotedVersion = regexp.MustCompile(`version "([^"]+)"`)

// ProbeVersion runs `java -version` and parses the reported version.
func (j *JDK) ProbeVersion(ctx context.Context, runner process.Runner) (*version.Version, error) {
	java, err := j.JavaExecutable()
	if err != nil {
		return nil, err
	}
	cmd := process.NewCommand(java)
	cmd.Args.AddFlag("-version")

	lines, err := process.Probe(ctx, runner, cmd, ProbeTimeout)
	if err != nil {
		return nil, err
	}
	return ParseVersionOutput(lines)
}

// ParseVersionOutput extracts the version from `java -version` output
// (`openjdk version "17.0.2" 2022-01-18`) or from a bare `jpackage --version`
// line (`17.0.2`).
func ParseVersionOutput(lines []string) (*version.Version, error) {
	for _, line := range lines {
		raw := ""
		if m := quotedVersion.FindStringSubmatch(line); m != nil {
			raw = m[1]
		} else if fields := strings.Fields(line); len(fields) == 1 {
			raw = fields[0]
		}
		if raw == "" {
			continue
		}
		// 1.8.0_292 style update numbers are not semver
		raw, _, _ = strings.Cut(raw, "_")
		if v, err := version.NewVersion(raw); err == nil {
			return v, nil
		}
	}
	return nil, errs.Processing(nil, "no version found in %d lines of output", len(lines))
}

// FeatureRelease returns the Java feature release number: 8 for 1.8.0, 17
// for 17.0.2.
func FeatureRelease(v *version.Version) int {
	segments := v.Segments()
	if len(segments) > 1 && segments[0] == 1 {
		return segments[1]
	}
	return segments[0]
}
