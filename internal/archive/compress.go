package archive

import (
	"compress/gzip"
	"io"

	"github.com/klauspost/compress/zstd"
)

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// newCompressWriter wraps w for the chosen format. FormatTar passes bytes
// through untouched, which is the compatibility default: existing archives
// in the store are plain tar despite the tool's lineage suggesting otherwise.
func newCompressWriter(w io.Writer, f Format) (io.WriteCloser, error) {
	switch f {
	case FormatGzip:
		return gzip.NewWriter(w), nil
	case FormatZstd:
		return zstd.NewWriter(w)
	default:
		return nopWriteCloser{w}, nil
	}
}
