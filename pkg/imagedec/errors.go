// pkg/imagedec/errors.go
package imagedec

import "errors"

var (
	// ErrEmpty is returned for an empty input buffer
	ErrEmpty = errors.New("image data is empty")

	// ErrUnsupportedDepth is returned for truecolor depths other than 24 and 32
	ErrUnsupportedDepth = errors.New("unsupported truecolor bit depth")

	// ErrTruncated is returned when the buffer ends before the pixel data does
	ErrTruncated = errors.New("truecolor data is truncated")

	// ErrInvalidSize is returned for negative dimensions
	ErrInvalidSize = errors.New("invalid image dimensions")
)
