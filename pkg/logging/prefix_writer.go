package logging

import (
	"bytes"
	"io"
	"sync"
)

// LineWriter is an io.Writer that buffers data and hands every complete
// line (without its terminator) to a callback. It is safe for concurrent use.
type LineWriter struct {
	mu     sync.Mutex
	onLine func(line []byte) error
	buffer bytes.Buffer
}

// NewLineWriter creates a LineWriter that calls onLine for each line.
func NewLineWriter(onLine func(line []byte) error) *LineWriter {
	return &LineWriter{onLine: onLine}
}

// Write implements io.Writer. Incomplete trailing data stays buffered until a
// newline arrives or Flush is called.
func (lw *LineWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	n := len(p)
	lw.buffer.Write(p)

	for {
		idx := bytes.IndexByte(lw.buffer.Bytes(), '\n')
		if idx < 0 {
			break
		}
		line := make([]byte, idx)
		copy(line, lw.buffer.Next(idx+1))
		if err := lw.onLine(bytes.TrimSuffix(line, []byte{'\r'})); err != nil {
			return 0, err
		}
	}

	return n, nil
}

// Flush emits any buffered partial line.
func (lw *LineWriter) Flush() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if lw.buffer.Len() == 0 {
		return nil
	}
	line := bytes.TrimSuffix(lw.buffer.Bytes(), []byte{'\r'})
	rest := make([]byte, len(line))
	copy(rest, line)
	lw.buffer.Reset()
	return lw.onLine(rest)
}

// PrefixWriter wraps an io.Writer and adds a prefix to each line.
type PrefixWriter struct {
	*LineWriter
}

// NewPrefixWriter creates a new PrefixWriter.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	return &PrefixWriter{
		LineWriter: NewLineWriter(func(line []byte) error {
			out := make([]byte, 0, len(prefix)+len(line)+1)
			out = append(out, prefix...)
			out = append(out, line...)
			out = append(out, '\n')
			_, err := w.Write(out)
			return err
		}),
	}
}
