// internal/texcache/cache.go
package texcache

import (
	"container/list"
	"encoding/hex"
	"image"
	"sync"
	"sync/atomic"

	"github.com/zeebo/blake3"
	"golang.org/x/sync/singleflight"
)

// Key identifies a decoded texture: the BLAKE3 hash of the encoded bytes
// together with everything that changes the decoded result.
type Key [32]byte

// KeyOf hashes encoded image data and a variant string (decode options, target size)
func KeyOf(data []byte, variant string) Key {
	h := blake3.New()
	h.Write(data)
	h.Write([]byte{0})
	h.Write([]byte(variant))
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// String returns the hex form used for disk file names
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// entry tracks a decoded texture with LRU metadata
type entry struct {
	key     Key
	img     *image.NRGBA
	lruNode *list.Element
}

// Cache keeps decoded textures in a bounded in-memory LRU, optionally backed
// by a zstd-compressed disk tier. Concurrent requests for the same key decode once.
// Cached images are shared and must not be modified by callers.
type Cache struct {
	mu         sync.Mutex
	entries    map[Key]*entry
	lruList    *list.List // front = most recently used
	maxEntries int        // 0 = unlimited

	disk  *diskTier
	group singleflight.Group

	// Statistics
	hits      atomic.Uint64
	diskHits  atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates a cache holding up to maxEntries images in memory (0 = unlimited).
// A non-empty dir enables the disk tier.
func New(maxEntries int, dir string) *Cache {
	c := &Cache{
		entries:    make(map[Key]*entry),
		lruList:    list.New(),
		maxEntries: maxEntries,
	}
	if dir != "" {
		c.disk = &diskTier{dir: dir}
	}
	return c
}

// Get returns a cached image from memory.
func (c *Cache) Get(key Key) (*image.NRGBA, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		c.lruList.MoveToFront(e.lruNode)
		return e.img, true
	}
	return nil, false
}

// GetOrDecode returns the image for key, consulting memory, then disk, then decode.
func (c *Cache) GetOrDecode(key Key, decode func() (*image.NRGBA, error)) (*image.NRGBA, error) {
	if img, ok := c.Get(key); ok {
		c.hits.Add(1)
		return img, nil
	}

	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		// Double-check in case another caller filled it
		if img, ok := c.Get(key); ok {
			c.hits.Add(1)
			return img, nil
		}
		if c.disk != nil {
			if img, ok := c.disk.load(key); ok {
				c.diskHits.Add(1)
				c.put(key, img)
				return img, nil
			}
		}

		c.misses.Add(1)
		img, err := decode()
		if err != nil {
			return nil, err
		}
		c.put(key, img)
		if c.disk != nil {
			// The disk tier is best effort
			_ = c.disk.store(key, img)
		}
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*image.NRGBA), nil
}

// put inserts into the memory tier, evicting the least recently used entry at capacity
func (c *Cache) put(key Key, img *image.NRGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.img = img
		c.lruList.MoveToFront(e.lruNode)
		return
	}
	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictLRU()
	}
	e := &entry{key: key, img: img}
	e.lruNode = c.lruList.PushFront(e)
	c.entries[key] = e
}

// evictLRU removes the least recently used entry
// Must be called with the lock held
func (c *Cache) evictLRU() {
	back := c.lruList.Back()
	if back == nil {
		return
	}
	e := back.Value.(*entry)
	delete(c.entries, e.key)
	c.lruList.Remove(back)
	c.evictions.Add(1)
}

// Count returns the number of images held in memory
func (c *Cache) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns cache statistics
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		DiskHits:  c.diskHits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// Stats contains cache statistics
type Stats struct {
	Hits      uint64 // Served from memory
	DiskHits  uint64 // Served from the disk tier
	Misses    uint64 // Decoded from source
	Evictions uint64 // Dropped from memory due to capacity
}

// HitRatio returns the share of requests not needing a decode, as a percentage
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.DiskHits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits+s.DiskHits) / float64(total) * 100
}
