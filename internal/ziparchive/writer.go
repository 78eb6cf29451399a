// internal/ziparchive/writer.go
package ziparchive

import (
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/flate"
	kzip "github.com/klauspost/compress/zip"
	yzip "github.com/yeka/zip"
)

// Writer writes a ZIP archive. Without a password entries go through
// klauspost/compress/zip with a deflate compressor at the requested level.
// With a password entries are encrypted by yeka/zip, whose deflate level is
// fixed by the library.
type Writer struct {
	plain  *kzip.Writer
	secure *yzip.Writer

	password string
	method   yzip.EncryptionMethod
}

// NewWriter creates a writer on out. level is a flate level (1..9).
func NewWriter(out io.Writer, level int, password string, aes bool) *Writer {
	if password != "" {
		method := yzip.StandardEncryption
		if aes {
			method = yzip.AES256Encryption
		}
		return &Writer{secure: yzip.NewWriter(out), password: password, method: method}
	}

	zw := kzip.NewWriter(out)
	zw.RegisterCompressor(kzip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, min(max(level, flate.BestSpeed), flate.BestCompression))
	})
	return &Writer{plain: zw}
}

// CreateDir adds a directory entry; name must end with "/"
func (w *Writer) CreateDir(name string, modTime time.Time) error {
	if w.secure != nil {
		fh := &yzip.FileHeader{Name: name, Method: yzip.Store}
		fh.SetModTime(modTime)
		fh.SetMode(os.ModeDir | 0755)
		_, err := w.secure.CreateHeader(fh)
		return err
	}
	fh := &kzip.FileHeader{Name: name, Method: kzip.Store}
	fh.Modified = modTime
	fh.SetMode(os.ModeDir | 0755)
	_, err := w.plain.CreateHeader(fh)
	return err
}

// CreateFile adds a deflated file entry, encrypted when the writer has a password
func (w *Writer) CreateFile(name string, modTime time.Time) (io.Writer, error) {
	if w.secure != nil {
		fh := &yzip.FileHeader{Name: name, Method: yzip.Deflate}
		fh.SetModTime(modTime)
		fh.SetMode(0644)
		fh.SetPassword(w.password)
		fh.SetEncryptionMethod(w.method)
		return w.secure.CreateHeader(fh)
	}
	fh := &kzip.FileHeader{Name: name, Method: kzip.Deflate}
	fh.Modified = modTime
	fh.SetMode(0644)
	return w.plain.CreateHeader(fh)
}

// Close writes the central directory
func (w *Writer) Close() error {
	if w.secure != nil {
		return w.secure.Close()
	}
	return w.plain.Close()
}
