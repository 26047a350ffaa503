package ocr

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFileToDict(t *testing.T) {
	tests := []struct {
		name     string
		tsv      string
		delim    string
		textCol  int
		wantKeys []string
		want     map[string][]any
	}{
		{
			name:     "coerces all but the text column",
			tsv:      "a b c\n1 2 x",
			delim:    " ",
			textCol:  2,
			wantKeys: []string{"a", "b", "c"},
			want:     map[string][]any{"a": {1}, "b": {2}, "c": {"x"}},
		},
		{
			name:     "negative text column counts from the end",
			tsv:      "left\ttop\ttext\n10\t20\thello\n30\t40\t42",
			delim:    "\t",
			textCol:  -1,
			wantKeys: []string{"left", "top", "text"},
			want: map[string][]any{
				"left": {10, 30},
				"top":  {20, 40},
				"text": {"hello", "42"},
			},
		},
		{
			name:     "pads a short last row",
			tsv:      "conf\ttext\n96\thi\n-1\t",
			delim:    "\t",
			textCol:  -1,
			wantKeys: []string{"conf", "text"},
			want: map[string][]any{
				"conf": {96, -1},
				"text": {"hi", ""},
			},
		},
		{
			name:     "skips short rows per column",
			tsv:      "a b c\n1\n4 5 6",
			delim:    " ",
			textCol:  2,
			wantKeys: []string{"a", "b", "c"},
			want: map[string][]any{
				"a": {1, 4},
				"b": {5},
				"c": {"6"},
			},
		},
		{
			name:     "truncates floats",
			tsv:      "conf text\n96.73 a\n-0.5 b",
			delim:    " ",
			textCol:  1,
			wantKeys: []string{"conf", "text"},
			want: map[string][]any{
				"conf": {96, 0},
				"text": {"a", "b"},
			},
		},
		{
			name:     "leaves non-numeric cells",
			tsv:      "a b\nNaN x\nfoo y",
			delim:    " ",
			textCol:  1,
			wantKeys: []string{"a", "b"},
			want: map[string][]any{
				"a": {"NaN", "foo"},
				"b": {"x", "y"},
			},
		},
		{
			name:     "header only",
			tsv:      "a b c\n",
			delim:    " ",
			textCol:  2,
			wantKeys: nil,
			want:     map[string][]any{},
		},
		{
			name:     "empty",
			tsv:      "",
			delim:    " ",
			textCol:  0,
			wantKeys: nil,
			want:     map[string][]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FileToDict(tt.tsv, tt.delim, tt.textCol)
			if !reflect.DeepEqual(got.Keys, tt.wantKeys) {
				t.Errorf("Keys: got %v, want %v", got.Keys, tt.wantKeys)
			}
			if !reflect.DeepEqual(got.Values, tt.want) {
				t.Errorf("Values: got %v, want %v", got.Values, tt.want)
			}
		})
	}
}

func TestFileToDict_DuplicateHeader(t *testing.T) {
	got := FileToDict("a b a\n1 2 3", " ", 1)

	if !reflect.DeepEqual(got.Keys, []string{"a", "b"}) {
		t.Errorf("Keys: got %v, want [a b]", got.Keys)
	}
	if !reflect.DeepEqual(got.Column("a"), []any{3}) {
		t.Errorf("a: got %v, want [3]", got.Column("a"))
	}
}

func TestBoxesToDict(t *testing.T) {
	got := BoxesToDict("H 10 20 30 40 0\ni 31 20 35 40 0")

	wantKeys := []string{"char", "left", "bottom", "right", "top", "page"}
	if !reflect.DeepEqual(got.Keys, wantKeys) {
		t.Fatalf("Keys: got %v, want %v", got.Keys, wantKeys)
	}

	want := map[string][]any{
		"char":   {"H", "i"},
		"left":   {10, 31},
		"bottom": {20, 20},
		"right":  {30, 35},
		"top":    {40, 40},
		"page":   {0, 0},
	}
	if !reflect.DeepEqual(got.Values, want) {
		t.Errorf("Values: got %v, want %v", got.Values, want)
	}
}

func TestBoxesToDict_NumericChar(t *testing.T) {
	got := BoxesToDict("7 1 2 3 4 0")
	if !reflect.DeepEqual(got.Column("char"), []any{"7"}) {
		t.Errorf("char: got %v, want [\"7\"]", got.Column("char"))
	}
}

func TestOSDToDict(t *testing.T) {
	tests := []struct {
		name string
		osd  string
		want map[string]any
	}{
		{
			name: "full report",
			osd: "Page number: 0\nOrientation in degrees: 270\nRotate: 90\n" +
				"Orientation confidence: 2.51\nScript: Latin\nScript confidence: 4.33\n",
			want: map[string]any{
				"page_num":         0,
				"orientation":      270,
				"rotate":           90,
				"orientation_conf": 2.51,
				"script":           "Latin",
				"script_conf":      4.33,
			},
		},
		{
			name: "rotate only",
			osd:  "Rotate: 0",
			want: map[string]any{"rotate": 0},
		},
		{
			name: "unknown keys are dropped",
			osd:  "Warning: something\nRotate: 180",
			want: map[string]any{"rotate": 180},
		},
		{
			name: "invalid integers are dropped",
			osd:  "Rotate: -90\nPage number: one\nScript: Cyrillic",
			want: map[string]any{"script": "Cyrillic"},
		},
		{
			name: "invalid floats are dropped",
			osd:  "Orientation confidence: high",
			want: map[string]any{},
		},
		{
			name: "crlf line endings",
			osd:  "Rotate: 90\r\nScript: Han\r\n",
			want: map[string]any{"rotate": 90, "script": "Han"},
		},
		{
			name: "lines with extra separators are ignored",
			osd:  "Script: a: b",
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OSDToDict(tt.osd)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDict_MarshalJSON(t *testing.T) {
	d := FileToDict("z a\n1 x", " ", 1)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"z":[1],"a":["x"]}` {
		t.Errorf("got %s", data)
	}
}

func TestDict_NilSafe(t *testing.T) {
	var d *Dict
	if d.Len() != 0 {
		t.Errorf("Len: got %d, want 0", d.Len())
	}
	if d.Column("x") != nil {
		t.Error("Column on nil dict should be nil")
	}
}

func TestReadOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("hello\n world \n\n\f"), 0o600); err != nil {
		t.Fatal(err)
	}

	text, raw, err := readOutput(path, false)
	if err != nil {
		t.Fatalf("readOutput failed: %v", err)
	}
	if text != "hello\n world" {
		t.Errorf("text: got %q", text)
	}
	if raw != nil {
		t.Errorf("raw should be nil for text reads")
	}

	text, raw, err = readOutput(path, true)
	if err != nil {
		t.Fatalf("readOutput failed: %v", err)
	}
	if text != "" || string(raw) != "hello\n world \n\n\f" {
		t.Errorf("bytes read: got text %q raw %q", text, raw)
	}
}

func TestReadOutput_Missing(t *testing.T) {
	_, _, err := readOutput(filepath.Join(t.TempDir(), "nope.txt"), false)
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
