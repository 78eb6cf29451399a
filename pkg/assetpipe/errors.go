// pkg/assetpipe/errors.go
package assetpipe

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindIO covers missing files or directories, permissions and truncated streams
	KindIO
	// KindNetwork covers transport failures and timeouts
	KindNetwork
	// KindFormat covers malformed archives, unsupported image depths and parser rejections
	KindFormat
	// KindArgument covers empty or missing required inputs
	KindArgument
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindNetwork:
		return "network"
	case KindFormat:
		return "format"
	case KindArgument:
		return "argument"
	default:
		return "unknown"
	}
}

// Error is a classified failure carrying its inner cause.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

// NewError builds a classified error.
func NewError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg = fmt.Sprintf("%s: %s error", msg, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the outermost classified error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
