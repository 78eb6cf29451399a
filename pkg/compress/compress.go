// pkg/compress/compress.go
package compress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/creativeyann17/go-assetpipe/internal/format"
	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
)

// sourceRoot is one top-level input of a compression run
type sourceRoot struct {
	AbsPath string
	// Prefix is the archive name the root is stored under ("" for InputPath mode)
	Prefix string
	IsDir  bool
	Info   os.FileInfo
}

// entryWriter is the container-specific half of Compress
type entryWriter interface {
	WriteDir(e *assetpipe.Entry) error
	WriteFile(e *assetpipe.Entry, src io.Reader, onChunk func(written int64)) error
	Close() error
}

// Compress archives InputPath or Files into OutputPath.
//
// Directories are walked depth-first: a directory entry is written before its
// direct files, and its direct files before any subdirectory is entered.
// Any I/O failure aborts the whole run; the partial archive is left in place.
// Hooks.Finished is called exactly once with the outcome.
func Compress(opts *Options, progressCb ProgressCallback) (result *Result, err error) {
	var hooks *assetpipe.Hooks
	if opts != nil {
		hooks = opts.Hooks
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("compress: %v", r)
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
		return nil, assetpipe.NewError(assetpipe.KindArgument, "compress", "", ErrInputRequired)
	}
	if err := opts.Validate(); err != nil {
		return nil, assetpipe.NewError(assetpipe.KindArgument, "compress", "", err)
	}

	roots, err := collectRoots(opts)
	if err != nil {
		return nil, err
	}

	c := &compressor{
		opts:       opts,
		hooks:      hooks,
		progressCb: progressCb,
		result:     &Result{},
	}
	result = c.result

	for _, root := range roots {
		if err := c.count(root); err != nil {
			return result, err
		}
	}

	progressCb.Emit(ProgressEvent{
		Type:       assetpipe.EventStart,
		Total:      int64(result.FilesTotal),
		TotalBytes: result.OriginalSize,
	})

	if dir := filepath.Dir(opts.OutputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return result, assetpipe.NewError(assetpipe.KindIO, "create output directory", dir, err)
		}
	}
	out, err := os.Create(opts.OutputPath)
	if err != nil {
		return result, assetpipe.NewError(assetpipe.KindIO, "create archive", opts.OutputPath, err)
	}
	defer out.Close()

	counter := &assetpipe.CountingWriter{Writer: out}
	switch opts.Format {
	case FormatTarXZ:
		c.w, err = newXzWriter(counter, opts.Level)
	default:
		c.w = newZipWriter(counter, opts.Level, opts.Password, opts.AES)
	}
	if err != nil {
		return result, assetpipe.NewError(assetpipe.KindIO, "create archive", opts.OutputPath, err)
	}

	for _, root := range roots {
		if root.IsDir {
			err = c.walkDir(root.AbsPath, root.Prefix, root)
		} else {
			err = c.addFile(root.AbsPath, root.Prefix, root.Info)
		}
		if err != nil {
			c.w.Close()
			return result, err
		}
	}

	if err := c.w.Close(); err != nil {
		return result, assetpipe.NewError(assetpipe.KindIO, "finalize archive", opts.OutputPath, err)
	}
	result.CompressedSize = uint64(counter.Count)

	progressCb.Emit(ProgressEvent{
		Type:         assetpipe.EventComplete,
		Current:      int64(result.FilesProcessed),
		Total:        int64(result.FilesTotal),
		CurrentBytes: result.OriginalSize,
		TotalBytes:   result.OriginalSize,
	})
	return result, nil
}

// collectRoots resolves the inputs. In Files mode every path is stored under
// its base name; in InputPath mode the directory contents are stored relative to it.
func collectRoots(opts *Options) ([]sourceRoot, error) {
	if len(opts.Files) == 0 {
		info, err := os.Stat(opts.InputPath)
		if err != nil {
			return nil, assetpipe.NewError(assetpipe.KindIO, "stat input", opts.InputPath, err)
		}
		abs := filepath.Clean(opts.InputPath)
		if !info.IsDir() {
			return []sourceRoot{{AbsPath: abs, Prefix: filepath.Base(abs), Info: info}}, nil
		}
		return []sourceRoot{{AbsPath: abs, IsDir: true, Info: info}}, nil
	}

	roots := make([]sourceRoot, 0, len(opts.Files))
	for _, p := range opts.Files {
		clean := filepath.Clean(p)
		info, err := os.Stat(clean)
		if err != nil {
			return nil, assetpipe.NewError(assetpipe.KindIO, "stat input", p, err)
		}
		if !info.IsDir() && !info.Mode().IsRegular() {
			return nil, assetpipe.NewError(assetpipe.KindArgument, "stat input", p, ErrInputMissing)
		}
		roots = append(roots, sourceRoot{
			AbsPath: clean,
			Prefix:  filepath.Base(clean),
			IsDir:   info.IsDir(),
			Info:    info,
		})
	}
	return roots, nil
}

type compressor struct {
	opts       *Options
	hooks      *assetpipe.Hooks
	progressCb ProgressCallback
	result     *Result
	w          entryWriter

	// ignore matchers per directory root, built lazily
	ignores map[string]*ignoreMatcher
}

func (c *compressor) matcherFor(root sourceRoot) (*ignoreMatcher, error) {
	if !c.opts.UseIgnoreFiles || !root.IsDir {
		return nil, nil
	}
	if c.ignores == nil {
		c.ignores = make(map[string]*ignoreMatcher)
	}
	if m, ok := c.ignores[root.AbsPath]; ok {
		return m, nil
	}
	m, err := newIgnoreMatcher(root.AbsPath)
	if err != nil {
		return nil, fmt.Errorf("scan ignore files: %w", err)
	}
	c.ignores[root.AbsPath] = m
	return m, nil
}

// count walks a root once to size the run for progress reporting
func (c *compressor) count(root sourceRoot) error {
	if !root.IsDir {
		c.result.FilesTotal++
		c.result.OriginalSize += uint64(root.Info.Size())
		return nil
	}
	im, err := c.matcherFor(root)
	if err != nil {
		return err
	}
	return filepath.WalkDir(root.AbsPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return assetpipe.NewError(assetpipe.KindIO, "walk", path, err)
		}
		rel, _ := filepath.Rel(root.AbsPath, path)
		if d.IsDir() {
			if rel != "." && im.ShouldIgnoreDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || im.ShouldIgnore(rel) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return assetpipe.NewError(assetpipe.KindIO, "stat", path, err)
		}
		c.result.FilesTotal++
		c.result.OriginalSize += uint64(info.Size())
		return nil
	})
}

// walkDir writes dirPath (stored as name) and everything below it
func (c *compressor) walkDir(dirPath, name string, root sourceRoot) error {
	im, err := c.matcherFor(root)
	if err != nil {
		return err
	}

	var dirEntry *assetpipe.Entry
	if name != "" {
		info, err := os.Stat(dirPath)
		if err != nil {
			return assetpipe.NewError(assetpipe.KindIO, "stat", dirPath, err)
		}
		dirEntry = &assetpipe.Entry{
			Name:    name + "/",
			IsDir:   true,
			ModTime: info.ModTime(),
			Path:    dirPath,
		}
		if !c.hooks.Allow(dirEntry) {
			c.result.Skipped++
			return nil
		}
		if err := c.w.WriteDir(dirEntry); err != nil {
			return assetpipe.NewError(assetpipe.KindIO, "write directory entry", dirEntry.Name, err)
		}
		c.result.DirsProcessed++
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return assetpipe.NewError(assetpipe.KindIO, "read directory", dirPath, err)
	}

	// Direct files first, then descend
	var subdirs []os.DirEntry
	for _, de := range entries {
		childPath := filepath.Join(dirPath, de.Name())
		rel, _ := filepath.Rel(root.AbsPath, childPath)
		if de.IsDir() {
			if im.ShouldIgnoreDir(rel) {
				c.result.Skipped++
				continue
			}
			subdirs = append(subdirs, de)
			continue
		}
		if !de.Type().IsRegular() {
			continue
		}
		if im.ShouldIgnore(rel) {
			c.result.Skipped++
			continue
		}
		info, err := de.Info()
		if err != nil {
			return assetpipe.NewError(assetpipe.KindIO, "stat", childPath, err)
		}
		if err := c.addFile(childPath, format.JoinEntryName(name, de.Name()), info); err != nil {
			return err
		}
	}

	for _, de := range subdirs {
		childPath := filepath.Join(dirPath, de.Name())
		if err := c.walkDir(childPath, format.JoinEntryName(name, de.Name()), root); err != nil {
			return err
		}
	}

	if dirEntry != nil {
		c.hooks.Done(dirEntry)
	}
	return nil
}

// addFile streams one regular file into the archive under name
func (c *compressor) addFile(path, name string, info os.FileInfo) error {
	e := &assetpipe.Entry{
		Name:    name,
		Size:    uint64(info.Size()),
		ModTime: info.ModTime(),
		Path:    path,
	}
	if !c.hooks.Allow(e) {
		c.result.Skipped++
		return nil
	}

	c.progressCb.Emit(ProgressEvent{
		Type:       assetpipe.EventFileStart,
		FilePath:   name,
		TotalBytes: e.Size,
	})

	f, err := os.Open(path)
	if err != nil {
		return assetpipe.NewError(assetpipe.KindIO, "open", path, err)
	}
	defer f.Close()

	err = c.w.WriteFile(e, f, func(written int64) {
		c.progressCb.Emit(ProgressEvent{
			Type:         assetpipe.EventFileProgress,
			FilePath:     name,
			CurrentBytes: uint64(written),
			TotalBytes:   e.Size,
		})
	})
	if err != nil {
		return assetpipe.NewError(assetpipe.KindIO, "write entry", name, err)
	}

	c.result.FilesProcessed++
	c.hooks.Done(e)

	c.progressCb.Emit(ProgressEvent{
		Type:         assetpipe.EventFileComplete,
		FilePath:     name,
		Current:      int64(c.result.FilesProcessed),
		Total:        int64(c.result.FilesTotal),
		CurrentBytes: e.Size,
		TotalBytes:   e.Size,
	})
	return nil
}
