// Package jdeps runs the JDK dependency analyzer over an application jar and
// turns its summary output into the set of modules the application needs.
package jdeps

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/provide-io/jpackfx/pkg/jdk"
	"github.com/provide-io/jpackfx/pkg/process"
)

// Separator splits `<artifact> -> <module>` summary lines.
const Separator = " -> "

const (
	notFound = "not found"
	javaBase = "java.base"
)

// Parse collects the module names from jdeps summary output. Lines that do
// not have exactly one separator are ignored; "not found" and the implicit
// java.base module are dropped. The result is sorted and free of duplicates.
func Parse(lines []string) []string {
	set := make(map[string]struct{})
	for _, line := range lines {
		parts := strings.Split(line, Separator)
		if len(parts) != 2 {
			continue
		}
		set[parts[1]] = struct{}{}
	}
	delete(set, notFound)
	delete(set, javaBase)

	modules := make([]string, 0, len(set))
	for m := range set {
		modules = append(modules, m)
	}
	sort.Strings(modules)
	return modules
}

// Options describes one jdeps analysis.
type Options struct {
	// MultiRelease selects the versioned entries of a multi-release jar;
	// "base" when empty.
	MultiRelease string
	ModulePath   []string
	ClassPath    []string
	// Target is the jar (or class directory) to analyze.
	Target string
}

// Command builds the jdeps invocation for opts.
func Command(j *jdk.JDK, opts Options) (*process.Command, error) {
	exe, err := j.JdepsExecutable()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.Target) == "" {
		return nil, errs.Validation("jdeps needs a target jar")
	}
	if _, err := os.Stat(opts.Target); err != nil {
		return nil, errs.NotFound(err, "jdeps target %s", opts.Target)
	}

	multiRelease := opts.MultiRelease
	if multiRelease == "" {
		multiRelease = "base"
	}

	cmd := process.NewCommand(exe)
	cmd.Args.AddFlag("-summary")
	cmd.Args.Add("--multi-release", multiRelease)
	cmd.Args.Add("--module-path", joinPath(opts.ModulePath))
	cmd.Args.Add("--class-path", joinPath(opts.ClassPath))
	// the target is positional and must come last
	cmd.Args.AddFlag(opts.Target)
	return cmd, nil
}

// Analyze runs jdeps and returns the modules the target depends on.
func Analyze(ctx context.Context, runner process.Runner, j *jdk.JDK, opts Options, timeoutSecs int) ([]string, error) {
	cmd, err := Command(j, opts)
	if err != nil {
		return nil, err
	}
	out, err := runner.Run(ctx, cmd, timeoutSecs)
	if err != nil {
		return nil, err
	}
	if !out.Success() {
		return nil, errs.Processing(nil, "jdeps failed: %s", strings.Join(out.Errors(), "; "))
	}
	return Parse(out.Stdout), nil
}

func joinPath(entries []string) string {
	var kept []string
	for _, e := range entries {
		if strings.TrimSpace(e) != "" {
			kept = append(kept, e)
		}
	}
	return strings.Join(kept, string(filepath.ListSeparator))
}
