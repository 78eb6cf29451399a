// pkg/decompress/result.go
package decompress

// Result contains statistics about the decompression operation
type Result struct {
	// Number of file entries in the archive, when known up front (ZIP)
	FilesTotal int

	// Number of files written to disk
	FilesProcessed int

	// Number of directory entries created
	DirsCreated int

	// Number of entries vetoed by hooks or of unsupported types
	Skipped int

	// Total compressed size in bytes
	CompressedSize uint64

	// Total decompressed size in bytes
	DecompressedSize uint64

	// The error that aborted the operation, if any
	Errors []error
}

// Success returns true if the archive was fully extracted
func (r *Result) Success() bool {
	return len(r.Errors) == 0
}

// GetFilesTotal returns total files (interface method)
func (r *Result) GetFilesTotal() int {
	return r.FilesTotal
}

// GetFilesProcessed returns processed files (interface method)
func (r *Result) GetFilesProcessed() int {
	return r.FilesProcessed
}

// GetErrors returns the error list (interface method)
func (r *Result) GetErrors() []error {
	return r.Errors
}

// GetOriginalSize returns decompressed size (interface method)
func (r *Result) GetOriginalSize() uint64 {
	return r.DecompressedSize
}

// GetCompressedSize returns compressed size (interface method)
func (r *Result) GetCompressedSize() uint64 {
	return r.CompressedSize
}
