// pkg/scene/scene.go
package scene

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
)

// ErrNoParser is returned when no parser is registered for a format
var ErrNoParser = errors.New("no model parser for format")

// Node is one element of a scene graph
type Node struct {
	Name     string
	Mesh     string // mesh name, empty for transform-only nodes
	Children []*Node
}

// Scene is the root handle handed to the viewer
type Scene struct {
	Name  string
	Roots []*Node

	// Mesh statistics, informative only
	Meshes    int
	Vertices  int
	Triangles int
}

// Clip is a raw animation clip
type Clip struct {
	Name     string
	Duration time.Duration
	Channels int
}

// Model is what a parser produces
type Model struct {
	Scene     *Scene
	Clips     []Clip
	Materials []Material
}

// Source is the input of a parse. Path is always set for local files; Reader
// is set for fetched bytes. Format is the lowercased extension hint (".glb").
type Source struct {
	Path   string
	Reader io.Reader
	Format string
}

// FormatOf derives the extension hint for a path or URL
func FormatOf(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return strings.ToLower(filepath.Ext(path))
}

// Parser turns model bytes into a Model. progress, when non-nil, receives
// fractions in [0,1]. Parsers are not assumed to be reentrant.
type Parser interface {
	Parse(ctx context.Context, src Source, progress func(float64)) (*Model, error)
}

// ParserFunc adapts a function to Parser
type ParserFunc func(ctx context.Context, src Source, progress func(float64)) (*Model, error)

func (f ParserFunc) Parse(ctx context.Context, src Source, progress func(float64)) (*Model, error) {
	return f(ctx, src, progress)
}

// Registry dispatches to a parser by Source.Format
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]Parser
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register binds p to each extension
func (r *Registry) Register(p Parser, exts ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.parsers[ext] = p
	}
}

// Lookup returns the parser for an extension
func (r *Registry) Lookup(ext string) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[strings.ToLower(ext)]
	return p, ok
}

// Parse implements Parser by dispatching on src.Format
func (r *Registry) Parse(ctx context.Context, src Source, progress func(float64)) (*Model, error) {
	if src.Format == "" {
		src.Format = FormatOf(src.Path)
	}
	p, ok := r.Lookup(src.Format)
	if !ok {
		return nil, assetpipe.NewError(assetpipe.KindFormat, "parse", src.Path, ErrNoParser)
	}
	return p.Parse(ctx, src, progress)
}
