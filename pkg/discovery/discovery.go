// pkg/discovery/discovery.go
package discovery

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// metaSuffix marks editor side-car files that never count as assets
const metaSuffix = ".meta"

// Finder searches directory trees.
//
// Every search visits the direct files of a directory before descending,
// and descends into subdirectories in enumeration order. A missing root is
// "no result", never an error. A subdirectory that cannot be read is logged
// and skipped; the search continues with its siblings.
type Finder struct {
	Logger *slog.Logger
}

// NewFinder returns a Finder that logs through logger (slog.Default when nil).
func NewFinder(logger *slog.Logger) *Finder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Finder{Logger: logger}
}

func (f *Finder) logger() *slog.Logger {
	if f == nil || f.Logger == nil {
		return slog.Default()
	}
	return f.Logger
}

// FindFirstByExtension returns the first file whose lowercased extension is in exts.
func (f *Finder) FindFirstByExtension(dir string, exts ExtensionSet) string {
	return f.findFirst(dir, func(name string) bool { return exts.Contains(name) })
}

// FindFirstByName returns the first file whose name contains needle.
func (f *Finder) FindFirstByName(dir, needle string, caseInsensitive bool) string {
	if caseInsensitive {
		needle = strings.ToLower(needle)
		return f.findFirst(dir, func(name string) bool {
			return strings.Contains(strings.ToLower(name), needle)
		})
	}
	return f.findFirst(dir, func(name string) bool { return strings.Contains(name, needle) })
}

// FindFirstBySuffix returns the first file whose name ends with suffix.
func (f *Finder) FindFirstBySuffix(dir, suffix string) string {
	return f.findFirst(dir, func(name string) bool { return strings.HasSuffix(name, suffix) })
}

// FindFirstModel returns the first model file under dir and its matched extension.
func (f *Finder) FindFirstModel(dir string, exts ExtensionSet) (path, ext string) {
	if exts == nil {
		exts = ModelExtensions
	}
	path = f.FindFirstByExtension(dir, exts)
	if path != "" {
		ext, _ = exts.Match(path)
	}
	return path, ext
}

// FindAllByExtension returns every file under dir whose extension is in exts,
// in traversal order. Each call builds a fresh result.
func (f *Finder) FindAllByExtension(dir string, exts ExtensionSet) []string {
	var out []string
	f.walk(dir, func(path, name string) bool {
		if exts.Contains(name) {
			out = append(out, path)
		}
		return false
	})
	return out
}

// ListModelFiles returns the files directly inside dir (no recursion) that
// have an extension in exts. The order is the enumeration order.
func (f *Finder) ListModelFiles(dir string, exts ExtensionSet) []string {
	if exts == nil {
		exts = ModelExtensions
	}
	files, _, err := readDir(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			f.logger().Warn("list model files", "dir", dir, "error", err)
		}
		return nil
	}
	var out []string
	for _, name := range files {
		if exts.Contains(name) {
			out = append(out, slashJoin(dir, name))
		}
	}
	return out
}

func (f *Finder) findFirst(dir string, match func(name string) bool) string {
	var found string
	f.walk(dir, func(path, name string) bool {
		if match(name) {
			found = path
			return true
		}
		return false
	})
	return found
}

// walk visits files depth-first, siblings before descent, until visit returns true.
// It reports whether the walk was stopped.
func (f *Finder) walk(dir string, visit func(path, name string) bool) bool {
	if dir == "" {
		return false
	}
	files, subdirs, err := readDir(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			f.logger().Warn("skipping unreadable directory", "dir", dir, "error", err)
		}
		return false
	}

	for _, name := range files {
		if visit(slashJoin(dir, name), name) {
			return true
		}
	}
	for _, name := range subdirs {
		if f.walk(filepath.Join(dir, name), visit) {
			return true
		}
	}
	return false
}

// readDir splits a directory into file and subdirectory names.
// Side-car .meta files are dropped.
func readDir(dir string) (files, subdirs []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range entries {
		name := e.Name()
		switch {
		case e.IsDir():
			subdirs = append(subdirs, name)
		case strings.HasSuffix(strings.ToLower(name), metaSuffix):
		default:
			files = append(files, name)
		}
	}
	return files, subdirs, nil
}

// slashJoin joins and normalises to forward slashes
func slashJoin(dir, name string) string {
	return strings.ReplaceAll(filepath.ToSlash(filepath.Join(dir, name)), `\`, "/")
}

var defaultFinder = &Finder{}

// FindFirstByExtension searches with a Finder logging to slog.Default.
func FindFirstByExtension(dir string, exts ExtensionSet) string {
	return defaultFinder.FindFirstByExtension(dir, exts)
}

// FindFirstByName searches with a Finder logging to slog.Default.
func FindFirstByName(dir, needle string, caseInsensitive bool) string {
	return defaultFinder.FindFirstByName(dir, needle, caseInsensitive)
}

// FindFirstBySuffix searches with a Finder logging to slog.Default.
func FindFirstBySuffix(dir, suffix string) string {
	return defaultFinder.FindFirstBySuffix(dir, suffix)
}

// FindAllByExtension searches with a Finder logging to slog.Default.
func FindAllByExtension(dir string, exts ExtensionSet) []string {
	return defaultFinder.FindAllByExtension(dir, exts)
}

// FindFirstModel searches with a Finder logging to slog.Default.
func FindFirstModel(dir string) (path, ext string) {
	return defaultFinder.FindFirstModel(dir, ModelExtensions)
}

// ListModelFiles lists with a Finder logging to slog.Default.
func ListModelFiles(dir string) []string {
	return defaultFinder.ListModelFiles(dir, ModelExtensions)
}
