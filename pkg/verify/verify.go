// pkg/verify/verify.go
package verify

import (
	"archive/tar"
	"fmt"
	"io"
	"os"

	"github.com/creativeyann17/go-assetpipe/internal/format"
	"github.com/creativeyann17/go-assetpipe/internal/ziparchive"
	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
	"github.com/ulikunitz/xz"
)

// ProgressCallback is called for progress updates during verification
type ProgressCallback func(event ProgressEvent)

// ProgressEvent contains progress information
type ProgressEvent struct {
	Type     EventType
	FilePath string
	Current  int
	Total    int
	Message  string
}

// EventType indicates the type of progress event
type EventType int

const (
	EventStart EventType = iota
	EventFileVerify
	EventComplete
	EventError
)

func (cb ProgressCallback) emit(event ProgressEvent) {
	if cb != nil {
		cb(event)
	}
}

// Verify verifies an archive and returns comprehensive results.
// Nothing is written to disk.
func Verify(opts *Options, progressCb ProgressCallback) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, assetpipe.NewError(assetpipe.KindArgument, "verify", "", err)
	}

	result := &Result{
		ArchivePath: opts.InputPath,
	}

	// Open archive file
	archiveFile, err := os.Open(opts.InputPath)
	if err != nil {
		return nil, assetpipe.NewError(assetpipe.KindIO, "open archive", opts.InputPath, err)
	}
	defer archiveFile.Close()

	// Get archive size
	stat, err := archiveFile.Stat()
	if err != nil {
		return nil, assetpipe.NewError(assetpipe.KindIO, "stat archive", opts.InputPath, err)
	}
	result.ArchiveSize = uint64(stat.Size())

	// Read magic to determine format
	magic := make([]byte, format.MagicSize)
	if _, err := io.ReadFull(archiveFile, magic); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("read magic: %w", err))
		return result, ErrTruncatedArchive
	}
	result.Magic = string(magic)

	// Reset to start
	if _, err := archiveFile.Seek(0, io.SeekStart); err != nil {
		return nil, assetpipe.NewError(assetpipe.KindIO, "seek to start", opts.InputPath, err)
	}

	// Route based on format
	switch format.DetectFormat(magic) {
	case format.FormatZIP:
		result.Format = FormatZIP
		return result, verifyZip(archiveFile, int64(result.ArchiveSize), opts, progressCb, result)

	case format.FormatXZ:
		result.Format = FormatTarXZ
		return result, verifyTarXz(archiveFile, opts, progressCb, result)

	default:
		result.Format = FormatUnknown
		result.Errors = append(result.Errors, ErrInvalidMagic)
		return result, ErrUnsupportedFormat
	}
}

// entryChecker records per-entry structural findings shared by both formats
type entryChecker struct {
	result *Result
	seen   map[string]bool
}

func newEntryChecker(result *Result) *entryChecker {
	return &entryChecker{result: result, seen: make(map[string]bool)}
}

func (c *entryChecker) check(name string) {
	// Check for duplicates
	if c.seen[name] {
		c.result.DuplicatePaths++
		c.result.Errors = append(c.result.Errors, fmt.Errorf("duplicate path: %s", name))
	}
	c.seen[name] = true

	if _, err := format.ResolveEntryPath(".", name); err != nil {
		c.result.UnsafePaths++
		c.result.Errors = append(c.result.Errors, fmt.Errorf("%s: %w", name, ErrUnsafePath))
	}
}

// verifyZip lists the central directory and optionally reads every file through its CRC
func verifyZip(r io.ReaderAt, size int64, opts *Options, progressCb ProgressCallback, result *Result) error {
	zr, err := ziparchive.NewReader(r, size)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("read central directory: %w", err))
		return ErrInvalidStructure
	}
	result.StructureValid = true

	progressCb.emit(ProgressEvent{
		Type:    EventStart,
		Total:   len(zr.File),
		Message: fmt.Sprintf("Verifying %d entries", len(zr.File)),
	})

	checker := newEntryChecker(result)
	for i, f := range zr.File {
		checker.check(f.Name)
		if f.IsDir() || assetpipe.IsDirName(f.Name) {
			result.DirCount++
			continue
		}

		info := FileInfo{
			Path:           f.Name,
			OriginalSize:   f.Size,
			CompressedSize: f.CompressedSize,
			Encrypted:      f.Encrypted,
		}
		result.FileCount++
		result.TotalOrigSize += f.Size
		result.TotalCompSize += f.CompressedSize
		if f.Size == 0 {
			result.EmptyFiles++
		}
		if info.Encrypted {
			result.EncryptedFiles++
		}

		if opts.VerifyData && (!info.Encrypted || opts.Password != "") {
			info.Error = readZipEntry(f, opts.Password)
			recordData(result, &info, progressCb)
		}

		result.Files = append(result.Files, info)
		progressCb.emit(ProgressEvent{
			Type:     EventFileVerify,
			FilePath: f.Name,
			Current:  i + 1,
			Total:    len(zr.File),
		})
	}

	result.DataVerified = opts.VerifyData
	progressCb.emit(ProgressEvent{Type: EventComplete, Current: result.FileCount, Total: result.FileCount})
	return nil
}

// readZipEntry drains an entry; the reader checks the CRC at EOF
func readZipEntry(f *ziparchive.File, password string) error {
	rc, err := f.Open(password)
	if err != nil {
		return err
	}
	defer rc.Close()
	_, err = assetpipe.CopyChunked(io.Discard, rc, nil)
	return err
}

func recordData(result *Result, info *FileInfo, progressCb ProgressCallback) {
	if info.Error != nil {
		result.CorruptFiles++
		result.Errors = append(result.Errors, fmt.Errorf("%s: %w: %v", info.Path, ErrCorruptData, info.Error))
		progressCb.emit(ProgressEvent{Type: EventError, FilePath: info.Path, Message: info.Error.Error()})
		return
	}
	info.DataValid = true
	result.FilesVerified++
}

// verifyTarXz walks the tar stream. Headers can only be reached by reading
// through the data, so the stream is always fully decoded.
func verifyTarXz(r io.Reader, opts *Options, progressCb ProgressCallback, result *Result) error {
	xzReader, err := xz.NewReader(r)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("create xz reader: %w", err))
		return ErrInvalidStructure
	}
	tarReader := tar.NewReader(xzReader)

	progressCb.emit(ProgressEvent{Type: EventStart, Message: "Verifying tar.xz stream"})

	checker := newEntryChecker(result)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("read tar header: %w", err))
			return ErrTruncatedArchive
		}

		checker.check(header.Name)
		if header.Typeflag == tar.TypeDir {
			result.DirCount++
			continue
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		info := FileInfo{
			Path:         header.Name,
			OriginalSize: uint64(header.Size),
		}
		result.FileCount++
		result.TotalOrigSize += uint64(header.Size)
		if header.Size == 0 {
			result.EmptyFiles++
		}

		n, err := assetpipe.CopyChunked(io.Discard, tarReader, nil)
		if err == nil && n != header.Size {
			err = io.ErrUnexpectedEOF
		}
		if opts.VerifyData {
			info.Error = err
			recordData(result, &info, progressCb)
		} else if err != nil {
			result.Files = append(result.Files, info)
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", header.Name, err))
			return ErrTruncatedArchive
		}

		result.Files = append(result.Files, info)
		progressCb.emit(ProgressEvent{
			Type:     EventFileVerify,
			FilePath: header.Name,
			Current:  result.FileCount,
		})
	}

	result.StructureValid = true
	result.DataVerified = opts.VerifyData
	progressCb.emit(ProgressEvent{Type: EventComplete, Current: result.FileCount, Total: result.FileCount})
	return nil
}
