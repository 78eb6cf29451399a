// pkg/imagedec/imagedec.go
package imagedec

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FormatTruecolor names the bespoke 24/32-bit uncompressed format
const FormatTruecolor = "tga"

// truecolorExtensions select the truecolor reader by file name
var truecolorExtensions = map[string]bool{".tga": true}

// Options tunes decoding
type Options struct {
	// CorrectAlpha makes 24-bit truecolor pixels opaque (255) instead of OpaqueAlpha24
	CorrectAlpha bool
}

// Image is a decoded, non-premultiplied pixel buffer
type Image struct {
	*image.NRGBA
	Format string
}

// Width returns the pixel width
func (i *Image) Width() int { return i.Rect.Dx() }

// Height returns the pixel height
func (i *Image) Height() int { return i.Rect.Dy() }

// Decoder decodes encoded image bytes
type Decoder struct {
	Options Options
}

// NewDecoder returns a decoder using opts
func NewDecoder(opts Options) *Decoder {
	return &Decoder{Options: opts}
}

// Decode decodes data. A hint of "tga" (or a ".tga" file name) selects the
// truecolor reader; anything else goes through the registered standard
// decoders (png, jpeg, gif, bmp, tiff, webp).
func (d *Decoder) Decode(data []byte, hint string) (*Image, error) {
	if len(data) < 1 {
		return nil, assetpipe.NewError(assetpipe.KindFormat, "decode image", hint, ErrEmpty)
	}
	if isTruecolorHint(hint) {
		img, err := decodeTruecolor(data, d.Options.CorrectAlpha)
		if err != nil {
			return nil, assetpipe.NewError(assetpipe.KindFormat, "decode truecolor", hint, err)
		}
		return &Image{NRGBA: img, Format: FormatTruecolor}, nil
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, assetpipe.NewError(assetpipe.KindFormat, "decode image", hint, err)
	}
	return &Image{NRGBA: toNRGBA(src), Format: format}, nil
}

// DecodeTruecolor decodes the bespoke truecolor format directly.
func (d *Decoder) DecodeTruecolor(data []byte) (*Image, error) {
	return d.Decode(data, FormatTruecolor)
}

// DecodeFile reads and decodes path, choosing the reader by extension.
func (d *Decoder) DecodeFile(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, assetpipe.NewError(assetpipe.KindIO, "read image", path, err)
	}
	return d.Decode(data, path)
}

func isTruecolorHint(hint string) bool {
	hint = strings.ToLower(hint)
	if hint == FormatTruecolor {
		return true
	}
	return truecolorExtensions[filepath.Ext(hint)]
}

func toNRGBA(src image.Image) *image.NRGBA {
	if img, ok := src.(*image.NRGBA); ok {
		return img
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

var defaultDecoder = &Decoder{}

// Decode decodes data with default options.
func Decode(data []byte, hint string) (*Image, error) {
	return defaultDecoder.Decode(data, hint)
}

// DecodeTruecolor decodes the truecolor format with default options.
func DecodeTruecolor(data []byte) (*Image, error) {
	return defaultDecoder.DecodeTruecolor(data)
}

// DecodeFile reads and decodes path with default options.
func DecodeFile(path string) (*Image, error) {
	return defaultDecoder.DecodeFile(path)
}
