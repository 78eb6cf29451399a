// internal/format/detect.go
package format

import (
	"bufio"
	"io"
)

// ArchiveFormat represents the detected archive format
type ArchiveFormat int

const (
	FormatUnknown ArchiveFormat = iota
	FormatZIP
	FormatXZ
)

// MagicSize is the number of leading bytes DetectFormat needs
const MagicSize = 6

// String returns the string representation of the format
func (f ArchiveFormat) String() string {
	switch f {
	case FormatZIP:
		return "ZIP"
	case FormatXZ:
		return "XZ"
	default:
		return "UNKNOWN"
	}
}

// DetectFormat detects the archive format from magic bytes
func DetectFormat(magic []byte) ArchiveFormat {
	switch {
	case IsZIP(magic):
		return FormatZIP
	case IsXZ(magic):
		return FormatXZ
	default:
		return FormatUnknown
	}
}

// Peek detects the format of a stream without consuming it.
// The returned reader must be used in place of r.
func Peek(r io.Reader) (ArchiveFormat, io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(MagicSize)
	if err != nil && err != io.EOF {
		return FormatUnknown, br, err
	}
	return DetectFormat(magic), br, nil
}

// IsZIP returns true if the magic bytes indicate a ZIP file
func IsZIP(magic []byte) bool {
	return len(magic) >= 2 && magic[0] == 'P' && magic[1] == 'K'
}

// IsXZ returns true if the magic bytes indicate an XZ file
func IsXZ(magic []byte) bool {
	return len(magic) >= 6 &&
		magic[0] == 0xFD && magic[1] == '7' && magic[2] == 'z' &&
		magic[3] == 'X' && magic[4] == 'Z' && magic[5] == 0x00
}
