// pkg/compress/errors.go
package compress

import "errors"

var (
	// ErrInputRequired is returned when neither InputPath nor Files is specified
	ErrInputRequired = errors.New("input path is required")

	// ErrOutputRequired is returned when no output archive path is given
	ErrOutputRequired = errors.New("output path is required")

	// ErrInvalidLevel is returned when compression level is out of range
	ErrInvalidLevel = errors.New("compression level must be between 1 and 9")

	// ErrInvalidFormat is returned for an unknown archive format
	ErrInvalidFormat = errors.New("archive format must be \"zip\" or \"tar.xz\"")

	// ErrPasswordUnsupported is returned when a password is combined with tar.xz
	ErrPasswordUnsupported = errors.New("password protection requires zip format")

	// ErrInputMissing is returned when an input path is neither a file nor a directory
	ErrInputMissing = errors.New("input is neither a file nor a directory")
)
