// pkg/decompress/decompress_zip.go
package decompress

import (
	"github.com/creativeyann17/go-assetpipe/internal/ziparchive"
	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
)

// extractZip extracts a ZIP archive in central-directory order
func (x *extractor) extractZip(src *archiveSource) error {
	zr, err := ziparchive.NewReader(src.readerAt, src.size)
	if err != nil {
		return assetpipe.NewError(assetpipe.KindFormat, "open zip", x.opts.InputPath, err)
	}

	for _, f := range zr.File {
		if !f.IsDir() && !assetpipe.IsDirName(f.Name) {
			x.result.FilesTotal++
		}
	}

	x.progressCb.Emit(ProgressEvent{
		Type:  assetpipe.EventStart,
		Total: int64(x.result.FilesTotal),
	})

	for _, f := range zr.File {
		if err := x.extractZipEntry(f); err != nil {
			return err
		}
	}
	return nil
}

func (x *extractor) extractZipEntry(f *ziparchive.File) error {
	if f.Name == "" {
		return nil
	}

	path, err := x.target(f.Name)
	if err != nil {
		return err
	}
	e := &assetpipe.Entry{
		Name:           f.Name,
		IsDir:          f.IsDir() || assetpipe.IsDirName(f.Name),
		Size:           f.Size,
		CompressedSize: f.CompressedSize,
		ModTime:        f.ModTime,
		Path:           path,
	}
	if !x.hooks.Allow(e) {
		x.result.Skipped++
		return nil
	}
	if e.IsDir {
		return x.makeDir(e)
	}

	if f.Encrypted && x.opts.Password == "" {
		return assetpipe.NewError(assetpipe.KindArgument, "extract", f.Name, ErrPasswordRequired)
	}

	rc, err := f.Open(x.opts.Password)
	if err != nil {
		return assetpipe.NewError(assetpipe.KindFormat, "open entry", f.Name, err)
	}
	defer rc.Close()

	return x.writeFile(e, rc, classifyZipError)
}

// classifyZipError separates corrupt payloads from disk failures
func classifyZipError(err error) assetpipe.Kind {
	if ziparchive.IsCorrupt(err) {
		return assetpipe.KindFormat
	}
	return assetpipe.KindIO
}
