// pkg/assetpipe/io.go
package assetpipe

import (
	"io"
	"sync"
)

// CopyBufferSize is the fixed chunk size used when streaming entry payloads.
// It bounds peak memory per entry regardless of the entry size.
const CopyBufferSize = 32 * 1024

var copyBufferPool = sync.Pool{
	New: func() any {
		buf := make([]byte, CopyBufferSize)
		return &buf
	},
}

// CopyChunked streams src to dst through a pooled fixed-size buffer,
// calling onChunk with the running byte count after every write.
func CopyChunked(dst io.Writer, src io.Reader, onChunk func(written int64)) (int64, error) {
	bufp := copyBufferPool.Get().(*[]byte)
	defer copyBufferPool.Put(bufp)
	buf := *bufp

	var written int64
	for {
		nr, errRead := src.Read(buf)
		if nr > 0 {
			nw, errWrite := dst.Write(buf[:nr])
			written += int64(nw)
			if errWrite != nil {
				return written, errWrite
			}
			if nw != nr {
				return written, io.ErrShortWrite
			}
			if onChunk != nil {
				onChunk(written)
			}
		}
		if errRead == io.EOF {
			return written, nil
		}
		if errRead != nil {
			return written, errRead
		}
	}
}

// CountingWriter wraps an io.Writer and counts bytes written
type CountingWriter struct {
	Writer io.Writer
	Count  int64
}

func (cw *CountingWriter) Write(p []byte) (n int, err error) {
	n, err = cw.Writer.Write(p)
	cw.Count += int64(n)
	return n, err
}

// ProgressReader wraps an io.Reader with progress tracking
type ProgressReader struct {
	Reader io.Reader
	OnRead func(n int)
}

func (pr *ProgressReader) Read(p []byte) (n int, err error) {
	n, err = pr.Reader.Read(p)
	if n > 0 && pr.OnRead != nil {
		pr.OnRead(n)
	}
	return n, err
}
