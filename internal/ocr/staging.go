package ocr

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"github.com/ironsheep/tessbridge/internal/imaging"
)

// Staged is the set of temporary files reserved for one operation. Every
// file whose name starts with Base belongs to it.
type Staged struct {
	// Base is the unique path prefix used for the engine's output base.
	Base string

	// InputPath is the image file handed to the engine.
	InputPath string
}

// stager reserves basenames and persists in-memory images.
type stager struct {
	dir        string
	background color.Color
}

// stage reserves a unique basename and resolves input to a file path.
//
// input may be a path (string), an *imaging.Picture or imaging.Picture, an
// image.Image or encoded image bytes. Paths are used in place; everything else
// is written to {Base}.{ext}. When staging fails all reserved files are
// already released.
func (s stager) stage(input any) (_ *Staged, err error) {
	pic, path, err := classifyInput(input)
	if err != nil {
		return nil, err
	}

	base, err := s.reserve()
	if err != nil {
		return nil, err
	}
	staged := &Staged{Base: base}
	defer func() {
		if err != nil {
			err = errors.Join(err, staged.Release())
		}
	}()

	if pic == nil {
		staged.InputPath = path
		return staged, nil
	}

	format := imaging.PersistFormat(pic.Format)
	staged.InputPath = staged.Base + "." + imaging.Extension(format)
	if err := imaging.Save(pic.Image, staged.InputPath, s.background); err != nil {
		return nil, err
	}
	return staged, nil
}

// reserve creates an empty placeholder file with a fixed-length random name,
// so no other reservation can be a prefix of it.
func (s stager) reserve() (string, error) {
	dir := s.dir
	if dir == "" {
		dir = os.TempDir()
	}
	for attempt := 0; attempt < 100; attempt++ {
		name := filepath.Join(dir, "tess_"+uuid.NewString())
		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to reserve temp file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", errors.Join(err, os.Remove(name))
		}
		return name, nil
	}
	return "", fmt.Errorf("failed to reserve temp file in %s", dir)
}

// classifyInput returns either a normalized path or a picture to persist.
func classifyInput(input any) (*imaging.Picture, string, error) {
	switch v := input.(type) {
	case string:
		path, err := normalizePath(v)
		return nil, path, err
	case *imaging.Picture:
		if v == nil || isNilImage(v.Image) {
			return nil, "", ErrUnsupportedInput
		}
		return v, "", nil
	case imaging.Picture:
		if isNilImage(v.Image) {
			return nil, "", ErrUnsupportedInput
		}
		return &v, "", nil
	case []byte:
		pic, err := imaging.DecodeBytes(v)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedInput, err)
		}
		return pic, "", nil
	case image.Image:
		if isNilImage(v) {
			return nil, "", ErrUnsupportedInput
		}
		return &imaging.Picture{Image: v}, "", nil
	}
	return nil, "", fmt.Errorf("%w: %T", ErrUnsupportedInput, input)
}

// isNilImage reports a nil interface or a nil pointer behind one.
func isNilImage(img image.Image) bool {
	if img == nil {
		return true
	}
	v := reflect.ValueOf(img)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// normalizePath makes path absolute and resolves symlinks when it exists.
func normalizePath(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// Release removes every file matching {Base}*. Files that are already gone
// are ignored; the first other failure is returned after all removals were
// attempted.
func (s *Staged) Release() error {
	if s == nil || s.Base == "" {
		return nil
	}

	matches, err := filepath.Glob(escapeGlob(s.Base) + "*")
	if err != nil {
		return err
	}

	var first error
	for _, name := range matches {
		if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) && first == nil {
			first = err
		}
	}
	return first
}

// OutputPath returns the engine output file for kind.
func (s *Staged) OutputPath(kind OutputKind) string {
	return s.Base + "." + kind.Extension()
}

// escapeGlob quotes glob metacharacters so a temp directory containing them
// does not widen the match. Character classes are used because backslash is
// the path separator on Windows.
func escapeGlob(path string) string {
	var b strings.Builder
	for _, r := range path {
		switch {
		case r == '*' || r == '?' || r == '[':
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteByte(']')
		case r == '\\' && filepath.Separator != '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
