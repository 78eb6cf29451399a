// pkg/decompress/options.go
package decompress

import (
	"io"

	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
)

// Options configures the decompression behavior.
// Exactly one of InputPath, Data or Reader must be set.
type Options struct {
	// Input archive path
	InputPath string

	// Data holds the archive in memory
	Data []byte

	// Reader streams the archive. ZIP streams that do not implement
	// io.ReaderAt are spooled to a temporary file first.
	Reader io.Reader

	// Output directory path, created if absent
	OutputPath string

	// Password for encrypted ZIP entries
	Password string

	// Hooks observe and filter entries (optional)
	Hooks *assetpipe.Hooks

	// Verbose enables detailed logging
	Verbose bool

	// Quiet suppresses all output except errors
	Quiet bool
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() *Options {
	return &Options{}
}

// Validate checks if options are valid
func (o *Options) Validate() error {
	inputs := 0
	if o.InputPath != "" {
		inputs++
	}
	if o.Data != nil {
		inputs++
	}
	if o.Reader != nil {
		inputs++
	}
	switch {
	case inputs == 0:
		return ErrInputRequired
	case inputs > 1:
		return ErrMultipleInputs
	}
	if o.OutputPath == "" {
		return ErrOutputRequired
	}
	if o.Quiet {
		o.Verbose = false
	}
	return nil
}
