// internal/texcache/disk.go
package texcache

import (
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// diskMagic prefixes every cached file
var diskMagic = [4]byte{'T', 'X', 'C', '1'}

// diskTier stores raw NRGBA pixels compressed with zstd, one file per key.
// Layout: magic, width uint32, height uint32, then width*height*4 pixel bytes.
type diskTier struct {
	dir string
}

func (d *diskTier) path(key Key) string {
	return filepath.Join(d.dir, key.String()+".zst")
}

func (d *diskTier) store(key Key, img *image.NRGBA) error {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return err
	}
	// Write to a temp file and rename so readers never see partial files
	tmp, err := os.CreateTemp(d.dir, ".tex-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc, err := zstd.NewWriter(tmp, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		tmp.Close()
		return err
	}

	var header [12]byte
	copy(header[:4], diskMagic[:])
	binary.LittleEndian.PutUint32(header[4:8], uint32(img.Rect.Dx()))
	binary.LittleEndian.PutUint32(header[8:12], uint32(img.Rect.Dy()))
	if _, err := enc.Write(header[:]); err != nil {
		enc.Close()
		tmp.Close()
		return err
	}
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		start := img.PixOffset(img.Rect.Min.X, y)
		if _, err := enc.Write(img.Pix[start : start+img.Rect.Dx()*4]); err != nil {
			enc.Close()
			tmp.Close()
			return err
		}
	}
	if err := enc.Close(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), d.path(key))
}

func (d *diskTier) load(key Key) (*image.NRGBA, bool) {
	img, err := d.read(key)
	if err != nil {
		if !os.IsNotExist(err) {
			// Corrupt entries are dropped and decoded again
			os.Remove(d.path(key))
		}
		return nil, false
	}
	return img, true
}

func (d *diskTier) read(key Key) (*image.NRGBA, error) {
	f, err := os.Open(d.path(key))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var header [12]byte
	if _, err := io.ReadFull(dec, header[:]); err != nil {
		return nil, err
	}
	if [4]byte(header[:4]) != diskMagic {
		return nil, fmt.Errorf("texture cache: bad magic in %s", d.path(key))
	}
	w := int(binary.LittleEndian.Uint32(header[4:8]))
	h := int(binary.LittleEndian.Uint32(header[8:12]))

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if _, err := io.ReadFull(dec, img.Pix); err != nil {
		return nil, err
	}
	return img, nil
}
