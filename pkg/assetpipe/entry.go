// pkg/assetpipe/entry.go
package assetpipe

import (
	"strings"
	"time"
)

// Entry describes one archive item while an operation is running.
// It is only valid for the duration of the hook call that receives it.
type Entry struct {
	// Name is the archive-relative path, forward-slash separated.
	// Directory names end with "/".
	Name string

	IsDir bool

	// Size is the uncompressed size in bytes (0 for directories)
	Size uint64

	// CompressedSize is the stored payload size, when known
	CompressedSize uint64

	ModTime time.Time

	// Path is the filesystem side of the entry: the source file when
	// compressing, the destination when extracting
	Path string
}

// IsDirName reports whether an archive name denotes a directory.
func IsDirName(name string) bool {
	return strings.HasSuffix(name, "/")
}

// Hooks observe and filter an archive operation.
// Any field may be nil.
type Hooks struct {
	// PreEntry is called before an entry is written or extracted.
	// Returning false skips the entry (for a directory being compressed,
	// its whole subtree).
	PreEntry func(e *Entry) bool

	// PostEntry is called after an entry has been fully written or extracted.
	PostEntry func(e *Entry)

	// Finished is called exactly once with the overall outcome.
	Finished func(ok bool)
}

// Allow runs the pre-entry hook. A nil receiver allows everything.
func (h *Hooks) Allow(e *Entry) bool {
	if h == nil || h.PreEntry == nil {
		return true
	}
	return h.PreEntry(e)
}

// Done runs the post-entry hook.
func (h *Hooks) Done(e *Entry) {
	if h != nil && h.PostEntry != nil {
		h.PostEntry(e)
	}
}

// Finish runs the terminal hook.
func (h *Hooks) Finish(ok bool) {
	if h != nil && h.Finished != nil {
		h.Finished(ok)
	}
}
