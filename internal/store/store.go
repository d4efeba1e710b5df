// Package store opens and saves document images by file name and keeps a
// cache of decoded documents for long-running callers such as the MCP server.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ironsheep/greyscale-document-filter/internal/bmp"
	"github.com/ironsheep/greyscale-document-filter/internal/document"
)

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) document.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return document.FormatBMP24
	default:
		return document.FormatUnknown
	}
}

// Open reads the image at path, choosing the decoder by file extension.
//
// # Errors
//
//   - document.ErrUnsupportedFormat if the extension is not ".bmp"
//   - wrapped fs errors if the file cannot be read
//   - bitmap decoding errors (see bmp.Decode)
func Open(path string) (*document.Image, error) {
	switch FormatFromPath(path) {
	case document.FormatBMP24:
		return bmp.ReadFile(path)
	default:
		return nil, fmt.Errorf("%w: %s", document.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Save writes the chosen pixel grid of im to path in format. FormatUnknown
// picks the format from the extension of path.
func Save(im *document.Image, path string, source bmp.Source, format document.Format) error {
	if format == document.FormatUnknown {
		format = FormatFromPath(path)
	}
	switch format {
	case document.FormatBMP24:
		return bmp.WriteFile(path, im, source)
	default:
		return fmt.Errorf("%w: cannot write %s", document.ErrUnsupportedFormat, path)
	}
}

// Cache provides thread-safe caching of opened documents keyed by path.
//
// Documents are stored with their greyscale grid already derived and must be
// treated as read-only: callers that cut out or remove background work on a
// Clone. Cached documents remain in memory until Evict or Clear.
//
//	cache := store.NewCache()
//	page, err := cache.Load("/scans/page1.bmp")
//	if err != nil {
//	    return err
//	}
//	work := page.Clone()
//	work.RemoveBackground(document.Whole())
type Cache struct {
	mu   sync.RWMutex
	docs map[string]*document.Image
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		docs: make(map[string]*document.Image),
	}
}

// Load returns the cached document for path, opening it on first use.
//
// The document is cached using the exact path string provided. Different
// paths to the same file result in separate entries.
func (c *Cache) Load(path string) (*document.Image, error) {
	c.mu.RLock()
	if im, ok := c.docs[path]; ok {
		c.mu.RUnlock()
		return im, nil
	}
	c.mu.RUnlock()

	im, err := Open(path)
	if err != nil {
		return nil, err
	}
	im.EnsureGreyscale()

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have won the race; keep its copy.
	if cached, ok := c.docs[path]; ok {
		return cached, nil
	}
	c.docs[path] = im
	return im, nil
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

// Clear removes all documents from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.docs = make(map[string]*document.Image)
	c.mu.Unlock()
}

// Evict removes the document cached for path. Unknown paths are ignored.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.docs, path)
	c.mu.Unlock()
}

// Info contains metadata about a document file.
type Info struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoded pixel format, e.g. "bmp24".
	Format string `json:"format"`

	// FileSizeBytes is the size of the file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// BaselineInk is the ink sum of the unmodified greyscale page.
	BaselineInk uint64 `json:"baseline_ink"`

	// BaselineUnits is BaselineInk in black-pixel toner units.
	BaselineUnits float64 `json:"baseline_units"`
}

// LoadInfo loads path through c and describes it.
func LoadInfo(c *Cache, path string) (*Info, error) {
	im, err := c.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	usage := im.InkUsage()
	return &Info{
		Width:         im.Width(),
		Height:        im.Height(),
		Format:        im.Format.String(),
		FileSizeBytes: stat.Size(),
		BaselineInk:   usage.Baseline,
		BaselineUnits: usage.BaselineUnits(),
	}, nil
}
