//go:build !windows

package ocr

import (
	"reflect"
	"testing"
)

func TestBuildArgs_Nice(t *testing.T) {
	got, err := buildArgs("tesseract", request{input: "/in.png", outputBase: "/tmp/b", kinds: "txt", nice: 5})
	if err != nil {
		t.Fatalf("buildArgs failed: %v", err)
	}
	want := []string{"nice", "-n", "5", "tesseract", "/in.png", "/tmp/b", "txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSplitConfig_Quoting(t *testing.T) {
	got, err := splitConfig(`--psm 6 -c "tessedit_char_whitelist=0 1" --user-words '/tmp/my words'`)
	if err != nil {
		t.Fatalf("splitConfig failed: %v", err)
	}
	want := []string{"--psm", "6", "-c", "tessedit_char_whitelist=0 1", "--user-words", "/tmp/my words"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}
