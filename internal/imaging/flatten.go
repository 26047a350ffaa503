package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultBackground is the colour transparent pixels are composited onto.
var DefaultBackground color.Color = color.White

// ParseBackground parses a "#rrggbb" colour for use as a flatten background.
// An empty string selects DefaultBackground.
func ParseBackground(hex string) (color.Color, error) {
	if hex == "" {
		return DefaultBackground, nil
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid background colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// HasAlpha reports whether img has any pixel that is not fully opaque.
func HasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}

// Flatten composites img onto an opaque background of the same size. Images
// that are already opaque are returned unchanged.
func Flatten(img image.Image, background color.Color) image.Image {
	if !HasAlpha(img) {
		return img
	}
	if background == nil {
		background = DefaultBackground
	}

	b := img.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), opaque(background))
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}

// opaque drops any alpha from c so the canvas never carries transparency.
func opaque(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0xff
	return n
}
