// pkg/discovery/extensions.go
package discovery

import (
	"sort"
	"strings"
)

// ModelExtensions are the model file types the loaders accept
var ModelExtensions = NewExtensionSet(".fbx", ".gltf", ".glb", ".unity3d", ".zip")

// ExtensionSet is a set of lowercased file extensions including the leading dot.
// Multi-part extensions such as ".tar.xz" are matched as name suffixes.
type ExtensionSet map[string]struct{}

// NewExtensionSet normalises exts ("FBX", ".fbx" and "fbx" are equivalent).
func NewExtensionSet(exts ...string) ExtensionSet {
	set := make(ExtensionSet, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

// Match returns the extension of name found in the set.
// The longest matching suffix wins.
func (s ExtensionSet) Match(name string) (string, bool) {
	lower := strings.ToLower(name)
	best := ""
	for ext := range s {
		if len(ext) > len(best) && strings.HasSuffix(lower, ext) {
			best = ext
		}
	}
	return best, best != ""
}

// Contains reports whether name has an extension in the set.
func (s ExtensionSet) Contains(name string) bool {
	_, ok := s.Match(name)
	return ok
}

// List returns the extensions sorted, for display.
func (s ExtensionSet) List() []string {
	out := make([]string, 0, len(s))
	for ext := range s {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
