// pkg/texture/convert.go
package texture

import (
	"image"
	"image/draw"
	"path/filepath"
	"strings"
)

func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// extOf is the lowercased extension, which selects the decoder
func extOf(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
