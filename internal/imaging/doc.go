// Package imaging loads, flattens and persists images for the tesseract binding.
//
// Tesseract reads images from disk and cannot make use of transparency, so
// in-memory images are composited onto an opaque background and written in a
// format the engine understands before each run. This package never inspects
// pixel content beyond that compositing step.
//
// # Formats
//
// Decoding covers PNG, JPEG and GIF from the standard library plus BMP, TIFF
// and WebP from golang.org/x/image. Persisting covers PNG, JPEG, GIF, TIFF and
// BMP; anything else (including WebP and images with no native format) is
// written as PNG.
//
// # Coordinate System
//
// Regions use 0-based pixel coordinates with (x1,y1) inclusive at the
// top-left and (x2,y2) exclusive at the bottom-right, relative to the image
// bounds origin.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The other functions are stateless and
// never modify their inputs.
package imaging
