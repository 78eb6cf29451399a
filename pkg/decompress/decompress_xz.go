// pkg/decompress/decompress_xz.go
package decompress

import (
	"archive/tar"
	"errors"
	"io"
	"strings"

	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
	"github.com/ulikunitz/xz"
)

// extractXz extracts a tar stream compressed with xz.
// The entry count is unknown up front, so EventStart carries no total.
func (x *extractor) extractXz(stream io.Reader) error {
	counted := &assetpipe.ProgressReader{Reader: stream, OnRead: func(n int) {
		if x.opts.InputPath == "" && x.opts.Data == nil {
			x.result.CompressedSize += uint64(n)
		}
	}}
	xzReader, err := xz.NewReader(counted)
	if err != nil {
		return assetpipe.NewError(assetpipe.KindFormat, "open xz", x.opts.InputPath, err)
	}
	tarReader := tar.NewReader(xzReader)

	x.progressCb.Emit(ProgressEvent{Type: assetpipe.EventStart})

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return assetpipe.NewError(classifyXzError(err), "read tar header", x.opts.InputPath, err)
		}
		if err := x.extractTarEntry(header, tarReader); err != nil {
			return err
		}
	}
}

func (x *extractor) extractTarEntry(header *tar.Header, r io.Reader) error {
	if header.Name == "" {
		return nil
	}

	isDir := header.Typeflag == tar.TypeDir
	if !isDir && header.Typeflag != tar.TypeReg {
		// Links and devices are not extracted
		x.result.Skipped++
		return nil
	}

	path, err := x.target(header.Name)
	if err != nil {
		return err
	}
	e := &assetpipe.Entry{
		Name:    header.Name,
		IsDir:   isDir,
		Size:    uint64(header.Size),
		ModTime: header.ModTime,
		Path:    path,
	}
	if !x.hooks.Allow(e) {
		x.result.Skipped++
		return nil
	}
	if isDir {
		return x.makeDir(e)
	}

	x.result.FilesTotal++
	return x.writeFile(e, r, classifyXzError)
}

// classifyXzError treats decoder and tar framing errors as format errors
func classifyXzError(err error) assetpipe.Kind {
	if errors.Is(err, tar.ErrHeader) || errors.Is(err, io.ErrUnexpectedEOF) ||
		strings.HasPrefix(err.Error(), "xz: ") || strings.HasPrefix(err.Error(), "lzma: ") {
		return assetpipe.KindFormat
	}
	return assetpipe.KindIO
}
