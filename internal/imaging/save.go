package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
)

// FormatPNG is the fallback persistence format.
const FormatPNG = "png"

// supportedFormats are the formats Save can write, keyed by registered name.
var supportedFormats = map[string]string{
	"png":  "png",
	"jpeg": "jpg",
	"gif":  "gif",
	"tiff": "tiff",
	"bmp":  "bmp",
}

// PersistFormat returns the format a picture with the given native format is
// written in: the native format when Save supports it, PNG otherwise.
func PersistFormat(native string) string {
	native = strings.ToLower(native)
	if native == "jpg" {
		native = "jpeg"
	}
	if _, ok := supportedFormats[native]; ok {
		return native
	}
	return FormatPNG
}

// Extension returns the file extension used for a persistence format.
func Extension(format string) string {
	if ext, ok := supportedFormats[PersistFormat(format)]; ok {
		return ext
	}
	return supportedFormats[FormatPNG]
}

// Save flattens img onto background and writes it to path. The encoder is
// picked from the path's extension.
func Save(img image.Image, path string, background color.Color) error {
	if img == nil {
		return fmt.Errorf("failed to save image: nil image")
	}
	if err := imaging.Save(Flatten(img, background), path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
