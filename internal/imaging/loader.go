package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Picture is a decoded image together with the format it was decoded from.
//
// Format is the name registered with the image package ("png", "jpeg", ...)
// or empty when the image was created in memory.
type Picture struct {
	Image  image.Image
	Format string
}

// Bounds returns the image bounds.
func (p *Picture) Bounds() image.Rectangle {
	return p.Image.Bounds()
}

// Decode reads an encoded image and records its native format.
func Decode(r io.Reader) (*Picture, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return &Picture{Image: img, Format: format}, nil
}

// DecodeBytes decodes an in-memory encoded image.
func DecodeBytes(data []byte) (*Picture, error) {
	return Decode(bytes.NewReader(data))
}

// Open decodes the image file at path.
func Open(path string) (*Picture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// ImageCache provides thread-safe caching of decoded pictures keyed by path.
//
// Cached pictures remain in memory until Evict or Clear is called. Different
// spellings of the same path produce separate entries.
type ImageCache struct {
	mu       sync.RWMutex
	pictures map[string]*Picture
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		pictures: make(map[string]*Picture),
	}
}

// Load returns the cached picture for path, decoding it from disk on a miss.
func (c *ImageCache) Load(path string) (*Picture, error) {
	c.mu.RLock()
	if pic, ok := c.pictures[path]; ok {
		c.mu.RUnlock()
		return pic, nil
	}
	c.mu.RUnlock()

	pic, err := Open(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.pictures[path] = pic
	c.mu.Unlock()

	return pic, nil
}

// Len returns the number of cached pictures.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pictures)
}

// Clear removes every cached picture.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.pictures = make(map[string]*Picture)
	c.mu.Unlock()
}

// Evict removes the picture cached under path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.pictures, path)
	c.mu.Unlock()
}
