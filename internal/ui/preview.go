package ui

import (
	"sync"

	_ "image/jpeg"
	_ "image/png"

	"github.com/babarot/imgsort/internal/core/types"
	_ "golang.org/x/image/webp"
)

// previewKey identifies one rendering of one file
type previewKey struct {
	path   string
	width  int
	height int
}

// previewCache keeps rendered previews across model copies
type previewCache struct {
	mu      sync.Mutex
	entries map[previewKey]string
	pending map[previewKey]bool
}

func newPreviewCache() *previewCache {
	return &previewCache{
		entries: make(map[previewKey]string),
		pending: make(map[previewKey]bool),
	}
}

func (c *previewCache) get(k previewKey) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[k]
	return s, ok
}

func (c *previewCache) put(k previewKey, s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[k] = s
	delete(c.pending, k)
}

// claim marks k as being rendered and reports whether the caller should render it
func (c *previewCache) claim(k previewKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[k]; ok || c.pending[k] {
		return false
	}
	c.pending[k] = true
	return true
}

// previewSource prefers the thumbnail, which is faster to decode
func previewSource(item types.Item) string {
	if item.HasThumb() {
		return item.ThumbPath
	}
	return item.FullPath
}

func (m Model) previewKey() (previewKey, bool) {
	h := m.previewHeight() - 1
	if h <= 0 {
		return previewKey{}, false
	}
	item, ok := m.collection.At(m.cursor)
	if !ok {
		return previewKey{}, false
	}
	return previewKey{path: previewSource(item), width: m.width, height: h}, true
}
