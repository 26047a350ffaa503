package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropRegion cuts the rectangle (x1,y1)-(x2,y2) out of pic, keeping its
// native format so the crop is persisted the same way as the original.
//
// The returned picture's bounds start at (0,0); callers offset coordinates
// reported by the engine by (x1,y1) to map them back.
func CropRegion(pic *Picture, x1, y1, x2, y2 int) (*Picture, error) {
	if pic == nil || pic.Image == nil {
		return nil, fmt.Errorf("crop: nil image")
	}
	bounds := pic.Bounds()

	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	return &Picture{
		Image:  imaging.Crop(pic.Image, image.Rect(x1, y1, x2, y2)),
		Format: pic.Format,
	}, nil
}
