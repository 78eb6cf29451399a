// pkg/verify/result.go
package verify

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Format represents the archive format type
type Format string

const (
	FormatZIP     Format = "ZIP"
	FormatTarXZ   Format = "TAR.XZ"
	FormatUnknown Format = "UNKNOWN"
)

// Result contains comprehensive verification results
type Result struct {
	// Archive metadata
	Format      Format // Archive format (ZIP, TAR.XZ)
	ArchivePath string // Path to the verified archive
	ArchiveSize uint64 // Total archive file size in bytes

	// Raw magic bytes as string
	Magic string

	// Entry statistics
	FileCount      int    // Number of file entries
	DirCount       int    // Number of directory entries
	TotalOrigSize  uint64 // Sum of original file sizes
	TotalCompSize  uint64 // Sum of compressed data sizes (ZIP only)
	EmptyFiles     int    // Number of zero-byte files
	EncryptedFiles int    // Number of password-protected entries

	// Data integrity (only populated when VerifyData=true)
	DataVerified  bool // Whether data verification was performed
	FilesVerified int  // Number of files with verified data
	CorruptFiles  int  // Number of files that failed verification

	// Structural integrity
	StructureValid bool // Container could be fully enumerated
	DuplicatePaths int  // Entries with duplicate names
	UnsafePaths    int  // Entries that would escape the extraction root

	// File details (populated during verification)
	Files []FileInfo

	// Errors encountered during verification
	Errors []error
}

// FileInfo contains information about a single file in the archive
type FileInfo struct {
	Path           string // Relative path in archive
	OriginalSize   uint64 // Original uncompressed size
	CompressedSize uint64 // Compressed size in archive (ZIP only)
	Encrypted      bool   // Entry is password protected
	DataValid      bool   // Data integrity verified (when VerifyData=true)
	Error          error  // Error if verification failed for this file
}

// CompressionRatio returns the compression ratio as a percentage
func (r *Result) CompressionRatio() float64 {
	if r.TotalOrigSize == 0 {
		return 0
	}
	return float64(r.TotalCompSize) / float64(r.TotalOrigSize) * 100
}

// IsValid returns true if the archive passed all validation checks
func (r *Result) IsValid() bool {
	return r.StructureValid && len(r.Errors) == 0 && r.CorruptFiles == 0 && r.UnsafePaths == 0
}

// Success returns true if verification completed without critical errors
func (r *Result) Success() bool {
	return r.IsValid()
}

// Summary returns a human-readable summary of the verification result
func (r *Result) Summary() string {
	status := "VALID"
	if !r.IsValid() {
		status = "INVALID"
	}

	s := fmt.Sprintf("Archive: %s [%s]\n", r.ArchivePath, status)
	s += fmt.Sprintf("Format:  %s\n", r.Format)
	s += fmt.Sprintf("Size:    %s\n", humanize.IBytes(r.ArchiveSize))
	s += fmt.Sprintf("Files:   %d (%d directories)\n", r.FileCount, r.DirCount)

	if r.TotalOrigSize > 0 {
		s += fmt.Sprintf("Original:   %s\n", humanize.IBytes(r.TotalOrigSize))
		if r.TotalCompSize > 0 {
			s += fmt.Sprintf("Compressed: %s (%.1f%% ratio)\n",
				humanize.IBytes(r.TotalCompSize), r.CompressionRatio())
		}
	}
	if r.EncryptedFiles > 0 {
		s += fmt.Sprintf("Encrypted:  %d entries\n", r.EncryptedFiles)
	}

	if r.DataVerified {
		s += "\nData Integrity:\n"
		s += fmt.Sprintf("  Files Verified:  %d/%d\n", r.FilesVerified, r.FileCount)
		if r.CorruptFiles > 0 {
			s += fmt.Sprintf("  Corrupt Files:   %d\n", r.CorruptFiles)
		}
	}

	if len(r.Errors) > 0 {
		s += fmt.Sprintf("\nErrors (%d):\n", len(r.Errors))
		for i, err := range r.Errors {
			if i >= 10 {
				s += fmt.Sprintf("  ... and %d more errors\n", len(r.Errors)-10)
				break
			}
			s += fmt.Sprintf("  - %v\n", err)
		}
	}

	return s
}
