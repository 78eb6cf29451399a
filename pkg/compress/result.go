// pkg/compress/result.go
package compress

// Result contains statistics about the compression operation
type Result struct {
	// Number of regular files found under the inputs
	FilesTotal int

	// Number of files written to the archive
	FilesProcessed int

	// Number of directory entries written
	DirsProcessed int

	// Number of entries vetoed by hooks or ignore files
	Skipped int

	// Total original size in bytes
	OriginalSize uint64

	// Size of the archive on disk
	CompressedSize uint64

	// The error that aborted the operation, if any
	Errors []error
}

// CompressionRatio returns the compression ratio as a percentage
func (r *Result) CompressionRatio() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return float64(r.CompressedSize) / float64(r.OriginalSize) * 100
}

// Success returns true if the archive was completed
func (r *Result) Success() bool {
	return len(r.Errors) == 0
}

func (r *Result) GetFilesTotal() int        { return r.FilesTotal }
func (r *Result) GetFilesProcessed() int    { return r.FilesProcessed }
func (r *Result) GetErrors() []error        { return r.Errors }
func (r *Result) GetOriginalSize() uint64   { return r.OriginalSize }
func (r *Result) GetCompressedSize() uint64 { return r.CompressedSize }
