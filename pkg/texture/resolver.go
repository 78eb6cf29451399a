// pkg/texture/resolver.go
package texture

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"

	"github.com/creativeyann17/go-assetpipe/internal/texcache"
	"github.com/creativeyann17/go-assetpipe/pkg/discovery"
	"github.com/creativeyann17/go-assetpipe/pkg/imagedec"
	"github.com/creativeyann17/go-assetpipe/pkg/scene"
	"github.com/nfnt/resize"
)

// Binding records one texture bound to a material
type Binding struct {
	Role   Role
	Path   string
	Width  int
	Height int
}

// Options configures a Resolver
type Options struct {
	// MaxSize downscales textures whose larger side exceeds it (0 = keep size)
	MaxSize int

	// CacheEntries bounds the in-memory texture cache. Caching is off when
	// both CacheEntries and CacheDir are zero.
	CacheEntries int

	// CacheDir enables the on-disk texture cache tier
	CacheDir string

	// Decode tunes the image decoder
	Decode imagedec.Options
}

// Resolver finds role-suffixed texture files next to a model and binds them
// into materials.
type Resolver struct {
	opts    Options
	finder  *discovery.Finder
	decoder *imagedec.Decoder
	cache   *texcache.Cache
	logger  *slog.Logger
}

// NewResolver creates a resolver. logger may be nil.
func NewResolver(opts Options, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{
		opts:    opts,
		finder:  discovery.NewFinder(logger),
		decoder: imagedec.NewDecoder(opts.Decode),
		logger:  logger,
	}
	if opts.CacheEntries > 0 || opts.CacheDir != "" {
		r.cache = texcache.New(opts.CacheEntries, opts.CacheDir)
	}
	return r
}

// CacheStats returns texture cache statistics (zero when caching is off)
func (r *Resolver) CacheStats() texcache.Stats {
	if r.cache == nil {
		return texcache.Stats{}
	}
	return r.cache.Stats()
}

// Resolve searches root for "<material name><suffix>" for every role, in
// role order, and binds what it finds. A role is skipped when nothing
// matches or the material lacks the role's property. A texture that cannot
// be read or decoded is logged and skipped.
func (r *Resolver) Resolve(mat scene.Material, root string) []Binding {
	var bindings []Binding
	for _, role := range Roles {
		path := r.finder.FindFirstByName(root, mat.Name()+role.Suffix, false)
		if path == "" {
			continue
		}
		if !mat.HasProperty(role.Property) {
			r.logger.Debug("material lacks texture slot",
				"material", mat.Name(), "property", role.Property, "texture", path)
			continue
		}

		img, err := r.load(path)
		if err != nil {
			r.logger.Warn("skipping texture", "material", mat.Name(), "texture", path, "error", err)
			continue
		}

		if role.ForceWhite {
			mat.SetColor(scene.PropColor, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
		mat.SetTexture(role.Property, img)

		b := img.Bounds()
		bindings = append(bindings, Binding{Role: role, Path: path, Width: b.Dx(), Height: b.Dy()})
		r.logger.Debug("bound texture",
			"material", mat.Name(), "property", role.Property, "texture", path,
			"width", b.Dx(), "height", b.Dy())
	}
	return bindings
}

// ResolveAll resolves every material of a model
func (r *Resolver) ResolveAll(materials []scene.Material, root string) []Binding {
	var all []Binding
	for _, mat := range materials {
		all = append(all, r.Resolve(mat, root)...)
	}
	return all
}

func (r *Resolver) load(path string) (*image.NRGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decode := func() (*image.NRGBA, error) {
		img, err := r.decoder.Decode(data, path)
		if err != nil {
			return nil, err
		}
		return r.downscale(img.NRGBA), nil
	}
	if r.cache == nil {
		return decode()
	}
	variant := fmt.Sprintf("%s|max=%d|alpha=%t", extOf(path), r.opts.MaxSize, r.opts.Decode.CorrectAlpha)
	return r.cache.GetOrDecode(texcache.KeyOf(data, variant), decode)
}

// downscale shrinks img so its larger side is at most MaxSize
func (r *Resolver) downscale(img *image.NRGBA) *image.NRGBA {
	limit := r.opts.MaxSize
	b := img.Bounds()
	if limit <= 0 || (b.Dx() <= limit && b.Dy() <= limit) {
		return img
	}
	var w, h uint
	if b.Dx() >= b.Dy() {
		w = uint(limit)
	} else {
		h = uint(limit)
	}
	scaled := resize.Resize(w, h, img, resize.Lanczos3)
	if out, ok := scaled.(*image.NRGBA); ok {
		return out
	}
	return toNRGBA(scaled)
}
