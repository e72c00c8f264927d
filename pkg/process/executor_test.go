package process

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  t.Name(),
		Level: hclog.Trace,
	})
}

func shell(script string) *Command {
	cmd := NewCommand("/bin/sh")
	cmd.Args.Add("-c", script)
	return cmd
}

func skipOnWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestRunCapturesLines(t *testing.T) {
	skipOnWindows(t)
	e := NewExecutor(testLogger(t))

	out, err := e.Run(context.Background(), shell("echo one; echo two; echo oops >&2; printf tail"), WaitForever)
	require.NoError(t, err)

	assert.True(t, out.Succeeded)
	assert.False(t, out.TimedOut)
	assert.Equal(t, 0, out.ExitCode)
	assert.Equal(t, []string{"one", "two", "tail"}, out.Stdout)
	assert.Equal(t, []string{"oops"}, out.Stderr)
	assert.False(t, out.Success())
}

func TestRunReportsExitCode(t *testing.T) {
	skipOnWindows(t)
	e := NewExecutor(testLogger(t))

	out, err := e.Run(context.Background(), shell("echo WARNING: noisy >&2; exit 3"), 10)
	require.NoError(t, err)

	assert.False(t, out.Succeeded)
	assert.Equal(t, 3, out.ExitCode)
	assert.False(t, out.HasErrors())
	assert.False(t, out.Success())
}

func TestRunTimeoutReturnsPartialOutput(t *testing.T) {
	skipOnWindows(t)
	e := NewExecutor(testLogger(t))

	start := time.Now()
	out, err := e.Run(context.Background(), shell("echo partial; sleep 30"), 1)
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 15*time.Second)
	assert.True(t, out.TimedOut)
	assert.False(t, out.Succeeded)
	assert.Equal(t, []string{"partial"}, out.Stdout)
}

func TestRunMissingExecutable(t *testing.T) {
	e := NewExecutor(nil)
	_, err := e.Run(context.Background(), NewCommand("/definitely/not/here/jpackage"), 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrProcessing))
}

type fakeRunner struct {
	out *Output
}

func (f *fakeRunner) Run(ctx context.Context, cmd *Command, timeoutSecs int) (*Output, error) {
	return f.out, nil
}

func TestProbe(t *testing.T) {
	lines, err := Probe(context.Background(), &fakeRunner{out: &Output{Succeeded: true, Stderr: []string{`openjdk version "17"`}}}, NewCommand("java"), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{`openjdk version "17"`}, lines)

	_, err = Probe(context.Background(), &fakeRunner{out: &Output{Succeeded: true}}, NewCommand("java"), 5)
	assert.True(t, errors.Is(err, errs.ErrProcessing))
}
