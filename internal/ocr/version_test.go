package ocr

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"tesseract 3.05.01\n leptonica-1.74.4", "3.5.1"},
		{"tesseract 4.1.1\n leptonica-1.79.0\n  libgif 5.1.4", "4.1.1"},
		{"tesseract v4.0.0-beta1.9\n", "4.0.0"},
		{"tesseract 4.1-a8s6f8d3f", "4.1.0"},
		{"tesseract 5.3.0", "5.3.0"},
		{"3.5.0", "3.5.0"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, err := ParseVersion(tt.raw)
			if err != nil {
				t.Fatalf("ParseVersion failed: %v", err)
			}
			if v.String() != tt.want {
				t.Errorf("got %s, want %s", v, tt.want)
			}
		})
	}
}

func TestParseVersion_Invalid(t *testing.T) {
	for _, raw := range []string{"", "tesseract", "not a version", "tesseract open source"} {
		t.Run(raw, func(t *testing.T) {
			if _, err := ParseVersion(raw); !errors.Is(err, ErrInvalidVersion) {
				t.Errorf("expected ErrInvalidVersion, got %v", err)
			}
		})
	}
}

func TestVersionThresholds(t *testing.T) {
	v, _ := ParseVersion("tesseract 3.05.00")
	if v.LessThan(MinVersion) {
		t.Errorf("3.05.00 should satisfy MinVersion %s", MinVersion)
	}
	if !v.LessThan(ALTOVersion) {
		t.Errorf("3.05.00 should be older than ALTOVersion %s", ALTOVersion)
	}

	old, _ := ParseVersion("tesseract 3.04.01")
	if !old.LessThan(MinVersion) {
		t.Errorf("3.04.01 should be older than MinVersion")
	}
}

func TestVersionError_Is(t *testing.T) {
	tsv := &VersionError{Feature: "TSV", Required: "3.5.0", Actual: "3.4.1"}
	if !errors.Is(tsv, ErrFeatureUnsupported) || !errors.Is(tsv, ErrTSVNotSupported) {
		t.Error("TSV error should match ErrFeatureUnsupported and ErrTSVNotSupported")
	}
	if errors.Is(tsv, ErrALTONotSupported) {
		t.Error("TSV error should not match ErrALTONotSupported")
	}

	alto := &VersionError{Feature: "ALTO", Required: "4.1.0", Actual: "4.0.0"}
	if !errors.Is(alto, ErrALTONotSupported) {
		t.Error("ALTO error should match ErrALTONotSupported")
	}
}
