// pkg/imagedec/imagedec_test.go
package imagedec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
)

// truecolorBytes builds a header followed by raw pixel bytes
func truecolorBytes(width, height, depth int, pixels []byte) []byte {
	data := make([]byte, 18, 18+len(pixels))
	data[2] = 2 // uncompressed truecolor, ignored by the reader
	data[12] = byte(width)
	data[13] = byte(width >> 8)
	data[14] = byte(height)
	data[15] = byte(height >> 8)
	data[16] = byte(depth)
	return append(data, pixels...)
}

func TestTruecolor24KeepsLiteralAlpha(t *testing.T) {
	// Two pixels stored as B,G,R
	data := truecolorBytes(2, 1, 24, []byte{10, 20, 30, 40, 50, 60})

	img, err := DecodeTruecolor(data)
	if err != nil {
		t.Fatalf("DecodeTruecolor failed: %v", err)
	}
	if img.Width() != 2 || img.Height() != 1 {
		t.Fatalf("Expected 2x1, got %dx%d", img.Width(), img.Height())
	}

	want := []color.NRGBA{
		{R: 30, G: 20, B: 10, A: 1},
		{R: 60, G: 50, B: 40, A: 1},
	}
	for x, w := range want {
		if got := img.NRGBAAt(x, 0); got != w {
			t.Errorf("Pixel %d: expected %v, got %v", x, w, got)
		}
	}
}

func TestTruecolor24CorrectAlpha(t *testing.T) {
	data := truecolorBytes(1, 1, 24, []byte{1, 2, 3})

	img, err := NewDecoder(Options{CorrectAlpha: true}).DecodeTruecolor(data)
	if err != nil {
		t.Fatalf("DecodeTruecolor failed: %v", err)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{R: 3, G: 2, B: 1, A: 255}) {
		t.Errorf("Unexpected pixel %v", got)
	}
}

func TestTruecolor32(t *testing.T) {
	data := truecolorBytes(1, 2, 32, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	img, err := DecodeTruecolor(data)
	if err != nil {
		t.Fatalf("DecodeTruecolor failed: %v", err)
	}
	// No vertical flip: the first stored pixel is row 0
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{R: 3, G: 2, B: 1, A: 4}) {
		t.Errorf("Row 0: unexpected pixel %v", got)
	}
	if got := img.NRGBAAt(0, 1); got != (color.NRGBA{R: 7, G: 6, B: 5, A: 8}) {
		t.Errorf("Row 1: unexpected pixel %v", got)
	}
}

func TestTruecolorErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrEmpty},
		{"short header", []byte{0, 0, 0}, ErrTruncated},
		{"depth 16", truecolorBytes(1, 1, 16, []byte{0, 0}), ErrUnsupportedDepth},
		{"depth 8", truecolorBytes(1, 1, 8, []byte{0}), ErrUnsupportedDepth},
		{"short pixels", truecolorBytes(2, 2, 24, []byte{1, 2, 3}), ErrTruncated},
		{"negative width", truecolorBytes(-1, 1, 24, nil), ErrInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DecodeTruecolor(tt.data)
			if img != nil {
				t.Error("Expected no image on failure")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			if !assetpipe.IsKind(err, assetpipe.KindFormat) {
				t.Errorf("Expected format error, got %v", err)
			}
		})
	}
}

func TestDecodeStandardFormats(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Set(1, 1, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	img, err := Decode(buf.Bytes(), "albedo.png")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Format != "png" {
		t.Errorf("Expected png, got %q", img.Format)
	}
	if img.Width() != 3 || img.Height() != 2 {
		t.Errorf("Expected 3x2, got %dx%d", img.Width(), img.Height())
	}
	if got := img.NRGBAAt(1, 1); got != (color.NRGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("Unexpected pixel %v", got)
	}

	if _, err := Decode([]byte("not an image"), "x.png"); !assetpipe.IsKind(err, assetpipe.KindFormat) {
		t.Errorf("Expected format error, got %v", err)
	}
}

func TestDecodeFileByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m_Albedo.TGA")
	if err := os.WriteFile(path, truecolorBytes(1, 1, 24, []byte{9, 8, 7}), 0644); err != nil {
		t.Fatal(err)
	}

	img, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile failed: %v", err)
	}
	if img.Format != FormatTruecolor {
		t.Errorf("Expected truecolor, got %q", img.Format)
	}

	if _, err := DecodeFile(filepath.Join(dir, "missing.png")); !assetpipe.IsKind(err, assetpipe.KindIO) {
		t.Errorf("Expected IO error, got %v", err)
	}
}
