// internal/ziparchive/reader.go
package ziparchive

import (
	stdflate "compress/flate"
	"errors"
	"io"
	"time"

	"github.com/klauspost/compress/flate"
	kzip "github.com/klauspost/compress/zip"
	yzip "github.com/yeka/zip"
)

const flagEncrypted = 0x1

// File is one entry of the central directory
type File struct {
	Name           string
	Size           uint64
	CompressedSize uint64
	ModTime        time.Time
	Encrypted      bool

	dir  bool
	open func(password string) (io.ReadCloser, error)
}

// IsDir reports whether the entry is a directory
func (f *File) IsDir() bool {
	return f.dir
}

// Open returns the decompressed content. password is only used by
// encrypted entries. Reading to EOF checks the CRC.
func (f *File) Open(password string) (io.ReadCloser, error) {
	return f.open(password)
}

// Reader lists the entries of a ZIP archive in central-directory order
type Reader struct {
	File []*File

	// Encrypted is set when at least one entry is encrypted
	Encrypted bool
}

// NewReader reads the central directory. Archives without encrypted
// entries are read by klauspost/compress/zip; the others by yeka/zip.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	// Entry paths are checked against the destination by the extractor
	kr, err := kzip.NewReader(r, size)
	if err != nil && !errors.Is(err, kzip.ErrInsecurePath) {
		return nil, err
	}
	kr.RegisterDecompressor(kzip.Deflate, flate.NewReader)

	for _, f := range kr.File {
		if f.Flags&flagEncrypted != 0 {
			return newSecureReader(r, size)
		}
	}

	zr := &Reader{File: make([]*File, 0, len(kr.File))}
	for _, f := range kr.File {
		zr.File = append(zr.File, &File{
			Name:           f.Name,
			Size:           f.UncompressedSize64,
			CompressedSize: f.CompressedSize64,
			ModTime:        f.Modified,
			dir:            f.FileInfo().IsDir(),
			open: func(string) (io.ReadCloser, error) {
				return f.Open()
			},
		})
	}
	return zr, nil
}

func newSecureReader(r io.ReaderAt, size int64) (*Reader, error) {
	yr, err := yzip.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	zr := &Reader{File: make([]*File, 0, len(yr.File)), Encrypted: true}
	for _, f := range yr.File {
		zr.File = append(zr.File, &File{
			Name:           f.Name,
			Size:           f.UncompressedSize64,
			CompressedSize: f.CompressedSize64,
			ModTime:        f.ModTime(),
			Encrypted:      f.IsEncrypted(),
			dir:            f.FileInfo().IsDir(),
			open: func(password string) (io.ReadCloser, error) {
				if f.IsEncrypted() {
					f.SetPassword(password)
				}
				return f.Open()
			},
		})
	}
	return zr, nil
}

// IsCorrupt reports whether err comes from damaged entry data or a wrong password
func IsCorrupt(err error) bool {
	var corrupt flate.CorruptInputError
	var stdCorrupt stdflate.CorruptInputError
	return errors.Is(err, kzip.ErrChecksum) || errors.Is(err, kzip.ErrFormat) ||
		errors.Is(err, kzip.ErrAlgorithm) ||
		errors.Is(err, yzip.ErrChecksum) || errors.Is(err, yzip.ErrFormat) ||
		errors.Is(err, yzip.ErrAlgorithm) ||
		errors.Is(err, yzip.ErrPassword) || errors.Is(err, yzip.ErrDecryption) ||
		errors.Is(err, yzip.ErrAuthentication) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.As(err, &corrupt) || errors.As(err, &stdCorrupt)
}
