package archive

import (
	"compress/gzip"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/provide-io/jpackfx/pkg/errs"
)

func init() {
	Register(gzipOperation{})
	Register(bzip2Operation{})
}

type gzipOperation struct{}

func (gzipOperation) Name() string      { return "gzip" }
func (gzipOperation) Extension() string { return ".gz" }

func (gzipOperation) Apply(w io.Writer) (io.WriteCloser, error) {
	gw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return nil, errs.Processing(err, "creating gzip writer")
	}
	return gw, nil
}

func (gzipOperation) Reverse(r io.Reader) (io.ReadCloser, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, errs.Processing(err, "creating gzip reader")
	}
	return gr, nil
}

type bzip2Operation struct{}

func (bzip2Operation) Name() string      { return "bzip2" }
func (bzip2Operation) Extension() string { return ".bz2" }

func (bzip2Operation) Apply(w io.Writer) (io.WriteCloser, error) {
	bw, err := bzip2.NewWriter(w, &bzip2.WriterConfig{Level: 9})
	if err != nil {
		return nil, errs.Processing(err, "creating bzip2 writer")
	}
	return bw, nil
}

func (bzip2Operation) Reverse(r io.Reader) (io.ReadCloser, error) {
	br, err := bzip2.NewReader(r, &bzip2.ReaderConfig{})
	if err != nil {
		return nil, errs.Processing(err, "creating bzip2 reader")
	}
	return br, nil
}
