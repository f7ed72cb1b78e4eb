package texture

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
)

// Resolver resolves a texture reference to a decoded image.
// dir is the directory the reference is relative to.
type Resolver interface {
	Resolve(dir, texName string) *image.NRGBA
}

// ErrNotFound is returned when a texture reference matches no file.
var ErrNotFound = errors.New("texture not found")

// Cache is a concurrency-safe texture cache shared by batch workers.
type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
	index *Index
}

// entry is one cached load; err is kept so failures are not retried.
type entry struct {
	img *image.NRGBA
	err error
}

// NewCache creates a texture cache. index may be nil.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]entry),
		index: index,
	}
}

// Resolve loads and caches a texture. The reference is tried relative to dir
// first, then looked up by stem in the index. Returns nil if not found or
// not decodable.
func (c *Cache) Resolve(dir, texName string) *image.NRGBA {
	img, _ := c.Load(dir, texName)
	return img
}

// Load is Resolve with the reason for a failure: ErrNotFound when no file
// matches, otherwise the decode error.
func (c *Cache) Load(dir, texName string) (*image.NRGBA, error) {
	path, ok := c.locate(dir, texName)
	if !ok {
		return nil, fmt.Errorf("texture: %s: %w", texName, ErrNotFound)
	}

	// Fast path: read lock
	c.mu.RLock()
	if e, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return e.img, e.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := LoadTexture(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, exists := c.items[path]; exists {
		return e.img, e.err
	}
	c.items[path] = entry{img: img, err: err}
	return img, err
}

// Len returns the number of cached paths, including failed loads.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) locate(dir, texName string) (string, bool) {
	if texName == "" {
		return "", false
	}
	p := filepath.FromSlash(texName)
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return c.index.ResolvePath(texName)
}
