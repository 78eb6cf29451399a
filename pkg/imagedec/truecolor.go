// pkg/imagedec/truecolor.go
package imagedec

import (
	"encoding/binary"
	"image"
)

const (
	truecolorHeaderSkip = 12
	// header skip + width + height + depth + descriptor
	truecolorPixelOffset = truecolorHeaderSkip + 2 + 2 + 1 + 1

	// OpaqueAlpha24 is the alpha written for every 24-bit truecolor pixel.
	// Existing materials were authored against this value; set
	// Options.CorrectAlpha to get 255 instead.
	OpaqueAlpha24 = 1
)

// TruecolorHeader is the part of a truecolor image that is interpreted
type TruecolorHeader struct {
	Width    int
	Height   int
	BitDepth int
}

// ReadTruecolorHeader parses the fixed header fields.
func ReadTruecolorHeader(data []byte) (TruecolorHeader, error) {
	if len(data) < 1 {
		return TruecolorHeader{}, ErrEmpty
	}
	if len(data) < truecolorPixelOffset {
		return TruecolorHeader{}, ErrTruncated
	}
	h := TruecolorHeader{
		Width:    int(int16(binary.LittleEndian.Uint16(data[12:14]))),
		Height:   int(int16(binary.LittleEndian.Uint16(data[14:16]))),
		BitDepth: int(data[16]),
	}
	if h.Width < 0 || h.Height < 0 {
		return h, ErrInvalidSize
	}
	if h.BitDepth != 24 && h.BitDepth != 32 {
		return h, ErrUnsupportedDepth
	}
	return h, nil
}

// decodeTruecolor reads uncompressed BGR(A) pixels in file order. Rows are
// not flipped, so row 0 of the result is the first row stored in the file.
func decodeTruecolor(data []byte, correctAlpha bool) (*image.NRGBA, error) {
	h, err := ReadTruecolorHeader(data)
	if err != nil {
		return nil, err
	}

	bpp := h.BitDepth / 8
	count := h.Width * h.Height
	pixels := data[truecolorPixelOffset:]
	if len(pixels) < count*bpp {
		return nil, ErrTruncated
	}

	var alpha24 uint8 = OpaqueAlpha24
	if correctAlpha {
		alpha24 = 0xFF
	}

	img := image.NewNRGBA(image.Rect(0, 0, h.Width, h.Height))
	for i := 0; i < count; i++ {
		src := pixels[i*bpp : i*bpp+bpp]
		dst := img.Pix[i*4 : i*4+4]
		dst[0] = src[2] // r
		dst[1] = src[1] // g
		dst[2] = src[0] // b
		if bpp == 4 {
			dst[3] = src[3]
		} else {
			dst[3] = alpha24
		}
	}
	return img, nil
}
