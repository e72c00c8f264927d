package archive

import (
	"strings"

	"github.com/provide-io/jpackfx/pkg/errs"
)

// Chain is a tar stream followed by zero or more operations, in the order
// they are applied when creating.
type Chain struct {
	Operations []Operation
}

// Named chains accepted by ParseChain.
var namedChains = map[string][]string{
	"tar":     {},
	"tar.gz":  {"gzip"},
	"tgz":     {"gzip"},
	"tar.bz2": {"bzip2"},
	"tbz2":    {"bzip2"},
}

// ParseChain accepts a named chain ("tar.gz", "tgz", "tar.bz2") or a
// pipe-separated list starting with tar ("tar|gzip").
func ParseChain(s string) (*Chain, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		s = "tar.gz"
	}

	names, ok := namedChains[s]
	if !ok {
		parts := strings.Split(s, "|")
		if len(parts) < 2 || strings.TrimSpace(parts[0]) != "tar" {
			return nil, errs.Validation("unknown archive format %q", s)
		}
		for _, p := range parts[1:] {
			if p = strings.TrimSpace(p); p != "" {
				names = append(names, p)
			}
		}
	}

	c := &Chain{}
	for _, name := range names {
		op, err := Get(name)
		if err != nil {
			return nil, err
		}
		c.Operations = append(c.Operations, op)
	}
	return c, nil
}

// ChainFor picks the named chain matching the suffix of path, falling back
// to tar.gz.
func ChainFor(path string) (*Chain, error) {
	lower := strings.ToLower(path)
	best := ""
	for name := range namedChains {
		if strings.HasSuffix(lower, "."+name) && len(name) > len(best) {
			best = name
		}
	}
	return ParseChain(best)
}

// Extension is the file name suffix for archives in this chain.
func (c *Chain) Extension() string {
	ext := ".tar"
	for _, op := range c.Operations {
		ext += op.Extension()
	}
	return ext
}

// String renders the chain in pipe form.
func (c *Chain) String() string {
	parts := []string{"tar"}
	for _, op := range c.Operations {
		parts = append(parts, op.Name())
	}
	return strings.Join(parts, "|")
}
