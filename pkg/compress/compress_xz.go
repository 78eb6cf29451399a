// pkg/compress/compress_xz.go
package compress

import (
	"archive/tar"
	"io"

	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
	"github.com/ulikunitz/xz"
)

// xzWriter writes entries into a tar stream compressed with xz
type xzWriter struct {
	xw *xz.Writer
	tw *tar.Writer
}

func newXzWriter(out io.Writer, level int) (*xzWriter, error) {
	// Scale dictionary with level
	xzConfig := xz.WriterConfig{
		DictCap: 1 << (20 + level),
	}
	if level >= 7 {
		xzConfig.DictCap = 1 << 26 // 64MB for high levels
	}

	xw, err := xzConfig.NewWriter(out)
	if err != nil {
		return nil, err
	}
	return &xzWriter{xw: xw, tw: tar.NewWriter(xw)}, nil
}

func (x *xzWriter) WriteDir(e *assetpipe.Entry) error {
	return x.tw.WriteHeader(&tar.Header{
		Typeflag: tar.TypeDir,
		Name:     e.Name,
		Mode:     0755,
		ModTime:  e.ModTime,
	})
}

func (x *xzWriter) WriteFile(e *assetpipe.Entry, src io.Reader, onChunk func(written int64)) error {
	header := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     e.Name,
		Mode:     0644,
		Size:     int64(e.Size),
		ModTime:  e.ModTime,
	}
	if err := x.tw.WriteHeader(header); err != nil {
		return err
	}
	// tar requires exactly Size bytes; a file that grew since stat is truncated to it
	_, err := assetpipe.CopyChunked(x.tw, io.LimitReader(src, header.Size), onChunk)
	return err
}

func (x *xzWriter) Close() error {
	if err := x.tw.Close(); err != nil {
		x.xw.Close()
		return err
	}
	return x.xw.Close()
}
