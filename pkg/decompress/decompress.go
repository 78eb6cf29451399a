// pkg/decompress/decompress.go
package decompress

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/creativeyann17/go-assetpipe/internal/format"
	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
)

// Decompress extracts an archive into opts.OutputPath.
//
// Entries are processed in stored order. Existing files are overwritten.
// The first failing entry aborts the run; entries already written stay on
// disk. Hooks.Finished is called exactly once with the outcome.
func Decompress(opts *Options, progressCb ProgressCallback) (result *Result, err error) {
	var hooks *assetpipe.Hooks
	if opts != nil {
		hooks = opts.Hooks
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decompress: %v", r)
		}
		if err != nil {
			if result != nil {
				result.Errors = append(result.Errors, err)
			}
			progressCb.Emit(ProgressEvent{Type: assetpipe.EventError})
		}
		hooks.Finish(err == nil)
	}()

	if opts == nil {
		return nil, assetpipe.NewError(assetpipe.KindArgument, "decompress", "", ErrInputRequired)
	}
	if err := opts.Validate(); err != nil {
		return nil, assetpipe.NewError(assetpipe.KindArgument, "decompress", "", err)
	}

	src, err := openSource(opts)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if err := os.MkdirAll(opts.OutputPath, 0755); err != nil {
		return nil, assetpipe.NewError(assetpipe.KindIO, "create output directory", opts.OutputPath, err)
	}

	x := &extractor{
		opts:       opts,
		hooks:      hooks,
		progressCb: progressCb,
		result:     &Result{CompressedSize: uint64(src.size)},
	}
	result = x.result

	switch src.format {
	case format.FormatZIP:
		err = x.extractZip(src)
	case format.FormatXZ:
		err = x.extractXz(src.stream)
	default:
		err = assetpipe.NewError(assetpipe.KindFormat, "detect format", opts.InputPath, ErrInvalidArchive)
	}
	if err != nil {
		return result, err
	}

	progressCb.Emit(ProgressEvent{
		Type:         assetpipe.EventComplete,
		Current:      int64(result.FilesProcessed),
		Total:        int64(result.FilesTotal),
		CurrentBytes: result.DecompressedSize,
		TotalBytes:   result.DecompressedSize,
	})
	return result, nil
}

// archiveSource is the opened input of a Decompress call
type archiveSource struct {
	format ArchiveFormat

	// readerAt and size are set for random-access inputs
	readerAt io.ReaderAt
	size     int64

	// stream reads the archive from its first byte
	stream io.Reader

	cleanup []func()
}

// ArchiveFormat is the detected container type
type ArchiveFormat = format.ArchiveFormat

func (s *archiveSource) Close() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
}

func openSource(opts *Options) (*archiveSource, error) {
	switch {
	case opts.InputPath != "":
		f, err := os.Open(opts.InputPath)
		if err != nil {
			return nil, assetpipe.NewError(assetpipe.KindIO, "open archive", opts.InputPath, err)
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, assetpipe.NewError(assetpipe.KindIO, "stat archive", opts.InputPath, err)
		}
		src := &archiveSource{readerAt: f, size: info.Size(), cleanup: []func(){func() { f.Close() }}}
		src.format, src.stream, err = format.Peek(f)
		if err != nil {
			src.Close()
			return nil, assetpipe.NewError(assetpipe.KindIO, "read magic", opts.InputPath, err)
		}
		return src, nil

	case opts.Data != nil:
		r := bytes.NewReader(opts.Data)
		return &archiveSource{
			format:   format.DetectFormat(opts.Data),
			readerAt: r,
			size:     r.Size(),
			stream:   r,
		}, nil

	default:
		f, stream, err := format.Peek(opts.Reader)
		if err != nil {
			return nil, assetpipe.NewError(assetpipe.KindIO, "read magic", "", err)
		}
		src := &archiveSource{format: f, stream: stream}
		if f == format.FormatZIP {
			if err := src.spool(); err != nil {
				src.Close()
				return nil, err
			}
		}
		return src, nil
	}
}

// spool copies a streamed ZIP to a temporary file so its central directory can be read
func (s *archiveSource) spool() error {
	tmp, err := os.CreateTemp("", "assetpipe-*.zip")
	if err != nil {
		return assetpipe.NewError(assetpipe.KindIO, "spool archive", "", err)
	}
	s.cleanup = append(s.cleanup, func() {
		tmp.Close()
		os.Remove(tmp.Name())
	})
	n, err := assetpipe.CopyChunked(tmp, s.stream, nil)
	if err != nil {
		return assetpipe.NewError(assetpipe.KindIO, "spool archive", tmp.Name(), err)
	}
	s.readerAt = tmp
	s.size = n
	return nil
}

type extractor struct {
	opts       *Options
	hooks      *assetpipe.Hooks
	progressCb ProgressCallback
	result     *Result
}

// target resolves an entry name under the output directory
func (x *extractor) target(name string) (string, error) {
	path, err := format.ResolveEntryPath(x.opts.OutputPath, name)
	if err != nil {
		return "", assetpipe.NewError(assetpipe.KindFormat, "resolve entry", name, err)
	}
	return path, nil
}

// makeDir creates a directory entry
func (x *extractor) makeDir(e *assetpipe.Entry) error {
	if err := os.MkdirAll(e.Path, 0755); err != nil {
		return assetpipe.NewError(assetpipe.KindIO, "create directory", e.Path, err)
	}
	x.result.DirsCreated++
	x.hooks.Done(e)
	return nil
}

// writeFile streams one file entry to disk, replacing any existing file
func (x *extractor) writeFile(e *assetpipe.Entry, src io.Reader, classify func(error) assetpipe.Kind) error {
	x.progressCb.Emit(ProgressEvent{
		Type:       assetpipe.EventFileStart,
		FilePath:   e.Name,
		TotalBytes: e.Size,
	})

	if err := os.MkdirAll(filepath.Dir(e.Path), 0755); err != nil {
		return assetpipe.NewError(assetpipe.KindIO, "create directory", filepath.Dir(e.Path), err)
	}
	out, err := os.Create(e.Path)
	if err != nil {
		return assetpipe.NewError(assetpipe.KindIO, "create file", e.Path, err)
	}

	written, err := assetpipe.CopyChunked(out, src, func(written int64) {
		x.progressCb.Emit(ProgressEvent{
			Type:         assetpipe.EventFileProgress,
			FilePath:     e.Name,
			CurrentBytes: uint64(written),
			TotalBytes:   e.Size,
		})
	})
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return assetpipe.NewError(classify(err), "extract", e.Name, err)
	}

	x.result.FilesProcessed++
	x.result.DecompressedSize += uint64(written)
	x.hooks.Done(e)

	x.progressCb.Emit(ProgressEvent{
		Type:         assetpipe.EventFileComplete,
		FilePath:     e.Name,
		Current:      int64(x.result.FilesProcessed),
		Total:        int64(x.result.FilesTotal),
		CurrentBytes: uint64(written),
		TotalBytes:   e.Size,
	})
	return nil
}
