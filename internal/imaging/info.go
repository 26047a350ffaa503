package imaging

import (
	"fmt"
	"os"
)

// ImageInfo describes an image file without exposing its pixels.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format the file was decoded from, e.g. "png" or "webp".
	Format string `json:"format"`

	// StagedFormat is the format the image is written in when it is handed
	// to the engine from memory. See PersistFormat.
	StagedFormat string `json:"staged_format"`

	// HasAlpha reports whether the image will be flattened onto a background
	// before recognition.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and returns its metadata.
//
// Parameters:
//   - cache: The image cache to use for loading. Must not be nil.
//   - path: Path to the image file.
//
// Returns:
//   - *ImageInfo: Dimensions and formats of the image.
//   - error: Non-nil if the image cannot be decoded or the file cannot be stat'd.
//
// # Coordinates
//
// Width and Height bound the region coordinates accepted by CropRegion:
// 0 <= x1 < x2 <= Width and 0 <= y1 < y2 <= Height for images whose bounds
// start at the origin.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	pic, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	bounds := pic.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        pic.Format,
		StagedFormat:  PersistFormat(pic.Format),
		HasAlpha:      HasAlpha(pic.Image),
		FileSizeBytes: stat.Size(),
	}, nil
}
