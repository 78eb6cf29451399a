// internal/texcache/cache_test.go
package texcache

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestKeyOfVariant(t *testing.T) {
	data := []byte("texture bytes")
	if KeyOf(data, "") != KeyOf(data, "") {
		t.Error("Key should be deterministic")
	}
	if KeyOf(data, "") == KeyOf(data, "max=256") {
		t.Error("Variant should change the key")
	}
	if len(KeyOf(data, "").String()) != 64 {
		t.Error("Key string should be 64 hex chars")
	}
}

func TestCacheLRU(t *testing.T) {
	c := New(2, "")
	k0, k1, k2 := Key{0}, Key{1}, Key{2}
	decode := func() (*image.NRGBA, error) { return solid(1, 1, color.NRGBA{A: 255}), nil }

	c.GetOrDecode(k0, decode)
	c.GetOrDecode(k1, decode)

	// Access k0 (makes it MRU)
	if _, ok := c.Get(k0); !ok {
		t.Fatal("k0 should be cached")
	}

	// Adding k2 evicts k1 (LRU), not k0
	c.GetOrDecode(k2, decode)

	if _, ok := c.Get(k1); ok {
		t.Error("k1 should have been evicted")
	}
	if _, ok := c.Get(k0); !ok {
		t.Error("k0 should still exist")
	}
	if c.Count() != 2 {
		t.Errorf("Expected 2 entries, got %d", c.Count())
	}
	if s := c.Stats(); s.Evictions != 1 || s.Misses != 3 {
		t.Errorf("Unexpected stats %+v", s)
	}
}

func TestCacheUnlimited(t *testing.T) {
	c := New(0, "")
	for i := 0; i < 100; i++ {
		c.GetOrDecode(Key{byte(i)}, func() (*image.NRGBA, error) { return solid(1, 1, color.NRGBA{}), nil })
	}
	if c.Count() != 100 {
		t.Errorf("Expected 100 entries, got %d", c.Count())
	}
}

func TestCacheDecodeError(t *testing.T) {
	c := New(4, "")
	boom := errors.New("boom")
	if _, err := c.GetOrDecode(Key{9}, func() (*image.NRGBA, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Errorf("Expected decode error, got %v", err)
	}
	if c.Count() != 0 {
		t.Error("Failed decodes must not be cached")
	}
}

func TestCacheSingleflight(t *testing.T) {
	c := New(4, "")
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.GetOrDecode(Key{7}, func() (*image.NRGBA, error) {
				calls.Add(1)
				<-release
				return solid(1, 1, color.NRGBA{}), nil
			})
		}()
	}
	close(release)
	wg.Wait()

	// Late arrivals hit memory; concurrent ones share the flight
	if calls.Load() != 1 {
		t.Errorf("Expected a single decode, got %d", calls.Load())
	}
}

func TestCacheDiskTier(t *testing.T) {
	dir := t.TempDir()
	want := solid(3, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 1})
	key := KeyOf([]byte("albedo"), "")

	first := New(1, dir)
	if _, err := first.GetOrDecode(key, func() (*image.NRGBA, error) { return want, nil }); err != nil {
		t.Fatal(err)
	}

	// A fresh cache finds it on disk without decoding
	second := New(1, dir)
	got, err := second.GetOrDecode(key, func() (*image.NRGBA, error) {
		t.Error("Should be served from disk")
		return nil, errors.New("unexpected decode")
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Rect.Dx() != 3 || got.Rect.Dy() != 2 {
		t.Fatalf("Unexpected size %v", got.Rect)
	}
	if got.NRGBAAt(2, 1) != want.NRGBAAt(2, 1) {
		t.Errorf("Pixel mismatch: %v vs %v", got.NRGBAAt(2, 1), want.NRGBAAt(2, 1))
	}
	if second.Stats().DiskHits != 1 {
		t.Errorf("Expected 1 disk hit, got %+v", second.Stats())
	}
}
