package process

import (
	"strings"

	"github.com/provide-io/jpackfx/pkg/utils/shellparse"
)

// Command describes one external program invocation.
type Command struct {
	Executable string
	Args       *Arguments
	Dir        string
	Env        []string
}

// NewCommand creates a command for the executable with no arguments.
func NewCommand(executable string) *Command {
	return &Command{
		Executable: executable,
		Args:       NewArguments(),
	}
}

// Argv returns the full argument vector, executable first.
func (c *Command) Argv() []string {
	return append([]string{c.Executable}, c.Args.Values()...)
}

// ShellString renders the command line with spaced values quoted, suitable
// for copying into a terminal.
func (c *Command) ShellString() string {
	parts := append([]string{shellparse.QuoteSpaced(c.Executable)}, c.Args.ShellSafeValues()...)
	return strings.Join(parts, " ")
}

func (c *Command) String() string {
	return c.ShellString()
}
