// pkg/compress/bytes.go
package compress

import (
	"bytes"
	"time"

	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
)

// CompressBytes stores data as the single entry name of a ZIP archive
// and returns the archive bytes.
func CompressBytes(name string, data []byte, password string) ([]byte, error) {
	if name == "" {
		return nil, assetpipe.NewError(assetpipe.KindArgument, "compress bytes", "", ErrInputRequired)
	}

	var buf bytes.Buffer
	w := newZipWriter(&buf, DefaultLevel, password, false)
	e := &assetpipe.Entry{
		Name:    name,
		Size:    uint64(len(data)),
		ModTime: time.Now(),
	}
	if err := w.WriteFile(e, bytes.NewReader(data), nil); err != nil {
		w.Close()
		return nil, assetpipe.NewError(assetpipe.KindIO, "compress bytes", name, err)
	}
	if err := w.Close(); err != nil {
		return nil, assetpipe.NewError(assetpipe.KindIO, "compress bytes", name, err)
	}
	return buf.Bytes(), nil
}
