// pkg/decompress/errors.go
package decompress

import "errors"

var (
	// ErrInputRequired is returned when no archive path, bytes or stream is given
	ErrInputRequired = errors.New("input archive is required")

	// ErrMultipleInputs is returned when more than one input kind is set
	ErrMultipleInputs = errors.New("only one of input path, data or reader may be set")

	// ErrOutputRequired is returned when the output directory is empty
	ErrOutputRequired = errors.New("output directory is required")

	// ErrInvalidArchive is returned when archive format is invalid
	ErrInvalidArchive = errors.New("invalid archive format")

	// ErrPasswordRequired is returned for an encrypted entry when no password is set
	ErrPasswordRequired = errors.New("archive entry is encrypted and no password was given")
)
