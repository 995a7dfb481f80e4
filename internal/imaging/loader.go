package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
)

// ImageCache provides thread-safe caching of decoded images to avoid
// redundant disk reads.
//
// The editor walks back and forth over a batch; decoding a large photo on
// every visit would dominate interaction time, so decoded pixels are kept
// keyed by file path until evicted. Images remain in memory until Evict()
// or Clear() is called, which matters for long labeling sessions over big
// batches.
//
// ImageCache is safe for concurrent use by multiple goroutines.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk if not
// cached. Supported formats are PNG, JPEG, GIF, BMP and TIFF. The image is
// cached under the exact path string provided.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Len returns the number of decoded images currently held.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes all images from the cache, freeing the associated memory.
// After Clear(), all images must be re-decoded on the next Load().
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path. If the path is
// not cached, Evict does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// SourceInfo identifies one batch image and carries the metadata needed
// before its pixels are ever decoded.
type SourceInfo struct {
	// Path is the file path the image is loaded from.
	Path string `json:"path"`

	// Name is the base file name, used in exports and the summary.
	Name string `json:"name"`

	// Width and Height are the pixel dimensions of the source raster.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the detected format as reported by the decoder, e.g.
	// "png", "jpeg", "bmp".
	Format string `json:"format"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Probe reads just enough of the file to validate it and report its
// dimensions and format, without decoding the pixel data. Batch discovery
// uses this to reject unreadable or undersized files cheaply.
func Probe(path string) (SourceInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return SourceInfo{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return SourceInfo{}, fmt.Errorf("failed to read image header: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		return SourceInfo{}, fmt.Errorf("failed to stat file: %w", err)
	}

	return SourceInfo{
		Path:          path,
		Name:          filepath.Base(path),
		Width:         cfg.Width,
		Height:        cfg.Height,
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}
