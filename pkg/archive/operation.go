// Package archive packs a directory tree into a tar stream passed through a
// chain of compression operations, and unpacks it again.
package archive

import (
	"io"
	"sort"

	"github.com/provide-io/jpackfx/pkg/errs"
)

// Operation is one reversible stream transformation applied after tar.
type Operation interface {
	// Name returns the lower-case operation name used in chain strings.
	Name() string

	// Extension is appended to the archive file name, e.g. ".gz".
	Extension() string

	// Apply wraps w so that bytes written are transformed. Closing the
	// returned writer flushes it but does not close w.
	Apply(w io.Writer) (io.WriteCloser, error)

	// Reverse wraps r so that reads yield the original bytes.
	Reverse(r io.Reader) (io.ReadCloser, error)
}

// registry maps operation names to implementations.
var registry = make(map[string]Operation)

// Register makes op available to chains under op.Name().
func Register(op Operation) {
	registry[op.Name()] = op
}

// Get retrieves an operation by name.
func Get(name string) (Operation, error) {
	op, ok := registry[name]
	if !ok {
		return nil, errs.Validation("unknown archive operation %q", name)
	}
	return op, nil
}

// Names lists the registered operation names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
