// pkg/verify/errors.go
package verify

import "errors"

var (
	// ErrInputRequired is returned when input path is not specified
	ErrInputRequired = errors.New("input path is required")

	// ErrInvalidMagic is returned when archive has invalid magic bytes
	ErrInvalidMagic = errors.New("invalid archive magic bytes")

	// ErrInvalidStructure is returned when the container cannot be read
	ErrInvalidStructure = errors.New("invalid archive structure")

	// ErrCorruptData is returned when decompressed data fails integrity check
	ErrCorruptData = errors.New("data corruption detected")

	// ErrTruncatedArchive is returned when archive appears truncated
	ErrTruncatedArchive = errors.New("archive appears truncated")

	// ErrUnsupportedFormat is returned for unknown archive formats
	ErrUnsupportedFormat = errors.New("unsupported archive format")

	// ErrUnsafePath is recorded for entries that would escape an extraction root
	ErrUnsafePath = errors.New("entry path escapes extraction root")
)
