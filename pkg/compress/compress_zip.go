// pkg/compress/compress_zip.go
package compress

import (
	"io"

	"github.com/creativeyann17/go-assetpipe/internal/ziparchive"
	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
)

// zipWriter writes entries into a single ZIP archive.
// File entries are encrypted when a password is set.
type zipWriter struct {
	zw *ziparchive.Writer
}

func newZipWriter(out io.Writer, level int, password string, aes bool) *zipWriter {
	return &zipWriter{zw: ziparchive.NewWriter(out, level, password, aes)}
}

func (z *zipWriter) WriteDir(e *assetpipe.Entry) error {
	return z.zw.CreateDir(e.Name, e.ModTime)
}

func (z *zipWriter) WriteFile(e *assetpipe.Entry, src io.Reader, onChunk func(written int64)) error {
	w, err := z.zw.CreateFile(e.Name, e.ModTime)
	if err != nil {
		return err
	}
	_, err = assetpipe.CopyChunked(w, src, onChunk)
	return err
}

func (z *zipWriter) Close() error {
	return z.zw.Close()
}
