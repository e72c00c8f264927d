package process

import (
	"strings"

	"github.com/provide-io/jpackfx/pkg/utils/shellparse"
)

// Argument is one command-line flag, optionally followed by a value.
type Argument struct {
	Flag     string
	Value    string
	HasValue bool
}

// Arguments is an ordered set of command-line arguments keyed by flag.
// Adding a flag that is already present replaces its value in place, so each
// flag occurs at most once in the rendered command.
type Arguments struct {
	order []string
	byKey map[string]Argument
}

// NewArguments returns an empty argument set.
func NewArguments() *Arguments {
	return &Arguments{byKey: make(map[string]Argument)}
}

func (a *Arguments) put(arg Argument) {
	if a.byKey == nil {
		a.byKey = make(map[string]Argument)
	}
	if _, exists := a.byKey[arg.Flag]; !exists {
		a.order = append(a.order, arg.Flag)
	}
	a.byKey[arg.Flag] = arg
}

// Add sets a flag with a value. A blank value drops the call entirely.
func (a *Arguments) Add(flag, value string) *Arguments {
	if strings.TrimSpace(value) == "" {
		return a
	}
	a.put(Argument{Flag: flag, Value: value, HasValue: true})
	return a
}

// AddFlag sets a presence-only flag.
func (a *Arguments) AddFlag(flag string) *Arguments {
	a.put(Argument{Flag: flag})
	return a
}

// AddIf sets a presence-only flag when cond holds.
func (a *Arguments) AddIf(cond bool, flag string) *Arguments {
	if cond {
		a.AddFlag(flag)
	}
	return a
}

// Remove deletes a flag if present.
func (a *Arguments) Remove(flag string) {
	if _, ok := a.byKey[flag]; !ok {
		return
	}
	delete(a.byKey, flag)
	for i, f := range a.order {
		if f == flag {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// Get returns the argument stored for flag.
func (a *Arguments) Get(flag string) (Argument, bool) {
	arg, ok := a.byKey[flag]
	return arg, ok
}

// Len returns the number of distinct flags.
func (a *Arguments) Len() int {
	return len(a.order)
}

// List returns the arguments in insertion order.
func (a *Arguments) List() []Argument {
	out := make([]Argument, 0, len(a.order))
	for _, f := range a.order {
		out = append(out, a.byKey[f])
	}
	return out
}

// Values flattens the set into [flag, value, flag, ...].
func (a *Arguments) Values() []string {
	return a.flatten(func(v string) string { return v })
}

// ShellSafeValues is Values with every value containing a space quoted.
func (a *Arguments) ShellSafeValues() []string {
	return a.flatten(shellparse.QuoteSpaced)
}

func (a *Arguments) flatten(render func(string) string) []string {
	out := make([]string, 0, 2*len(a.order))
	for _, arg := range a.List() {
		out = append(out, arg.Flag)
		if arg.HasValue {
			out = append(out, render(arg.Value))
		}
	}
	return out
}
