// pkg/compress/options.go
package compress

import (
	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
)

// Format selects the archive container
type Format string

const (
	// FormatZIP writes a ZIP archive (Deflate, optional password)
	FormatZIP Format = "zip"

	// FormatTarXZ writes a tar stream compressed with xz
	FormatTarXZ Format = "tar.xz"
)

// DefaultLevel matches the speed/ratio balance used for model packs
const DefaultLevel = 6

// Options configures the compression behavior
type Options struct {
	// InputPath is a directory whose contents are archived relative to it.
	// Ignored if Files is provided
	InputPath string

	// Files lists files and directories to archive. A directory is added
	// under its base name together with everything below it; a file is
	// added under its base name.
	Files []string

	// Output archive path
	OutputPath string

	// Password encrypts every file entry (zip only)
	Password string

	// AES selects WinZip AES-256 instead of traditional ZipCrypto when Password is set
	AES bool

	// Deflate level 1-9
	// Default: 6
	Level int

	// Format of the output archive
	// Default: zip
	Format Format

	// UseIgnoreFiles skips paths matched by .gitignore / .assetignore files
	// found inside archived directories
	UseIgnoreFiles bool

	// Hooks observe and filter entries (optional)
	Hooks *assetpipe.Hooks

	// Verbose enables detailed logging
	Verbose bool

	// Quiet suppresses all output except errors
	Quiet bool
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() *Options {
	return &Options{
		Level:  DefaultLevel,
		Format: FormatZIP,
	}
}

// Validate checks if options are valid
func (o *Options) Validate() error {
	if o.InputPath == "" && len(o.Files) == 0 {
		return ErrInputRequired
	}
	if o.OutputPath == "" {
		return ErrOutputRequired
	}
	if o.Format == "" {
		o.Format = FormatZIP
	}
	switch o.Format {
	case FormatZIP, FormatTarXZ:
	default:
		return ErrInvalidFormat
	}
	if o.Password != "" && o.Format != FormatZIP {
		return ErrPasswordUnsupported
	}
	if o.Level == 0 {
		o.Level = DefaultLevel
	}
	if o.Level < 1 || o.Level > 9 {
		return ErrInvalidLevel
	}
	if o.Quiet {
		o.Verbose = false
	}
	return nil
}
