// internal/format/names.go
package format

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrUnsafePath is returned for entry names that would land outside the output directory
var ErrUnsafePath = errors.New("entry path escapes output directory")

// SlashPath converts a native path to forward slashes
func SlashPath(p string) string {
	return strings.ReplaceAll(filepath.ToSlash(p), `\`, "/")
}

// JoinEntryName joins archive path segments with forward slashes
func JoinEntryName(parent, name string) string {
	if parent == "" {
		return name
	}
	return strings.TrimSuffix(parent, "/") + "/" + name
}

// ResolveEntryPath maps an archive entry name onto outputDir.
// Leading slashes are dropped; names with a volume or a ".." segment are rejected.
func ResolveEntryPath(outputDir, name string) (string, error) {
	if filepath.VolumeName(name) != "" {
		return "", ErrUnsafePath
	}
	slashed := strings.TrimLeft(SlashPath(name), "/")
	for _, part := range strings.Split(slashed, "/") {
		if part == ".." {
			return "", ErrUnsafePath
		}
	}
	return filepath.Join(outputDir, filepath.FromSlash(slashed)), nil
}
