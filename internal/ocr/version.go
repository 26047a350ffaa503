package ocr

import (
	"fmt"
	"strings"

	version "github.com/hashicorp/go-version"
)

var (
	// MinVersion is the oldest engine the binding accepts; it also gates TSV output.
	MinVersion = version.Must(version.NewVersion("3.05"))

	// ALTOVersion is the first engine release that writes ALTO XML.
	ALTOVersion = version.Must(version.NewVersion("4.1.0"))
)

// ParseVersion extracts the engine version from `tesseract --version` output.
//
// Leading non-digit characters are skipped, the first whitespace-delimited
// token is kept and anything from the first '-' on is dropped, so
// "tesseract v4.0.0-beta1.9" parses as 4.0.0.
func ParseVersion(raw string) (*version.Version, error) {
	s := strings.TrimLeftFunc(raw, func(r rune) bool {
		return r < '0' || r > '9'
	})
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, raw)
	}
	token, _, _ := strings.Cut(fields[0], "-")

	v, err := version.NewVersion(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, raw, err)
	}
	return v, nil
}
