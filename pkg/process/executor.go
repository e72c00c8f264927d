// Package process runs the JDK command-line tools and captures their output
// as lines.
package process

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/provide-io/jpackfx/pkg/logging"
)

// WaitForever disables the timeout of Run.
const WaitForever = -1

// killGrace bounds how long Run waits for output pipes after the process
// was killed on timeout.
const killGrace = 2 * time.Second

// Runner runs a command and returns what it printed.
type Runner interface {
	Run(ctx context.Context, cmd *Command, timeoutSecs int) (*Output, error)
}

// Executor spawns commands as child processes.
type Executor struct {
	logger hclog.Logger
}

// NewExecutor creates an executor logging through logger.
func NewExecutor(logger hclog.Logger) *Executor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Executor{logger: logger.Named("process")}
}

// Run starts cmd and waits for it to exit or for timeoutSecs to elapse
// (WaitForever or 0 wait indefinitely). A non-zero exit is reported through
// Output, not as an error; only a failure to start the process is an error.
func (e *Executor) Run(ctx context.Context, cmd *Command, timeoutSecs int) (*Output, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx := ctx
	if timeoutSecs > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSecs)*time.Second)
		defer cancel()
	}

	out := &Output{}
	stdout := logging.NewLineWriter(func(line []byte) error {
		out.Stdout = append(out.Stdout, string(line))
		return nil
	})
	stderr := logging.NewLineWriter(func(line []byte) error {
		out.Stderr = append(out.Stderr, string(line))
		return nil
	})

	c := exec.CommandContext(runCtx, cmd.Executable, cmd.Args.Values()...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.Stdout = stdout
	c.Stderr = stderr
	c.WaitDelay = killGrace

	e.logger.Info("🚀 Executing command", "path", cmd.Executable)
	e.logger.Debug("🚀 Full command", "command", cmd.ShellString(), "timeout", timeoutSecs)

	if err := c.Start(); err != nil {
		return nil, errs.Processing(err, "starting %s", cmd.Executable)
	}

	waitErr := c.Wait()
	_ = stdout.Flush()
	_ = stderr.Flush()

	if c.ProcessState != nil {
		out.ExitCode = c.ProcessState.ExitCode()
	}
	out.Succeeded = waitErr == nil

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		out.TimedOut = true
		out.Succeeded = false
		e.logger.Warn("⏰ Process timed out, output may be incomplete",
			"path", cmd.Executable, "timeout", timeoutSecs,
			"stdout_lines", len(out.Stdout), "stderr_lines", len(out.Stderr))
		return out, nil
	}

	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
		e.logger.Debug("✅ Process completed", "path", cmd.Executable)
	case errors.As(waitErr, &exitErr):
		e.logger.Info("⏹️ Process exited", "path", cmd.Executable, "code", exitErr.ExitCode())
	default:
		e.logger.Warn("⚠️ Process error", "path", cmd.Executable, "error", waitErr)
	}

	for _, line := range out.Errors() {
		e.logger.Debug("stderr", "line", line)
	}
	return out, nil
}

// Probe runs cmd and returns every line it printed. A process that prints
// nothing at all is treated as a failure, which is what version probes need.
func Probe(ctx context.Context, runner Runner, cmd *Command, timeoutSecs int) ([]string, error) {
	out, err := runner.Run(ctx, cmd, timeoutSecs)
	if err != nil {
		return nil, err
	}
	lines := out.Lines()
	if len(lines) == 0 {
		return nil, errs.Processing(nil, "%s produced no output", cmd.Executable)
	}
	return lines, nil
}
