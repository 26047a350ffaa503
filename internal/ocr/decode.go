package ocr

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// boxHeader names the columns of a box file, which tesseract writes without one.
const boxHeader = "char left bottom right top page"

// Dict holds column-oriented engine output. Keys keeps the header order;
// Values maps each key to its cells, which are int or string.
//
// Columns may have different lengths when rows were short.
type Dict struct {
	Keys   []string
	Values map[string][]any
}

func newDict() *Dict {
	return &Dict{Values: make(map[string][]any)}
}

// Column returns the values for key, or nil.
func (d *Dict) Column(key string) []any {
	if d == nil {
		return nil
	}
	return d.Values[key]
}

// Len returns the number of columns.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Keys)
}

// MarshalJSON encodes the dict as an object whose keys keep header order.
func (d *Dict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vals := d.Values[k]
		if vals == nil {
			vals = []any{}
		}
		val, err := json.Marshal(vals)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FileToDict splits delimited engine output into columns.
//
// The first row is the header. When the last row is one cell short (tesseract
// drops a trailing empty text field) it is padded with an empty cell. Cells
// outside textCol are coerced to int when they parse as numbers; textCol may
// be negative to count from the end. A row too short for a column is skipped
// for that column only.
func FileToDict(tsv, delim string, textCol int) *Dict {
	result := newDict()

	lines := strings.Split(strings.TrimSpace(tsv), "\n")
	if len(lines) < 2 {
		return result
	}

	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = strings.Split(line, delim)
	}

	header := rows[0]
	rows = rows[1:]
	length := len(header)
	if last := len(rows) - 1; len(rows[last]) < length {
		rows[last] = append(rows[last], "")
	}

	if textCol < 0 {
		textCol += length
	}

	for i, head := range header {
		if _, seen := result.Values[head]; !seen {
			result.Keys = append(result.Keys, head)
		}
		col := make([]any, 0, len(rows))
		for _, row := range rows {
			if len(row) <= i {
				continue
			}
			if i == textCol {
				col = append(col, row[i])
				continue
			}
			col = append(col, coerceCell(row[i]))
		}
		result.Values[head] = col
	}

	return result
}

// coerceCell truncates numeric cells to int and leaves everything else as text.
func coerceCell(cell string) any {
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return cell
	}
	t := math.Trunc(f)
	if t >= math.MaxInt64 || t < math.MinInt64 {
		return cell
	}
	return int(t)
}

// BoxesToDict decodes a box file into char/left/bottom/right/top/page columns.
func BoxesToDict(box string) *Dict {
	return FileToDict(boxHeader+"\n"+box, " ", 0)
}

type osdField struct {
	name string
	kind osdKind
}

type osdKind int

const (
	osdInt osdKind = iota
	osdFloat
	osdString
)

var osdKeys = map[string]osdField{
	"Page number":            {"page_num", osdInt},
	"Orientation in degrees": {"orientation", osdInt},
	"Rotate":                 {"rotate", osdInt},
	"Orientation confidence": {"orientation_conf", osdFloat},
	"Script":                 {"script", osdString},
	"Script confidence":      {"script_conf", osdFloat},
}

// OSDToDict decodes an orientation and script detection report. Unknown
// keys and values that do not parse as the field's type are dropped.
func OSDToDict(osd string) map[string]any {
	result := make(map[string]any)
	for _, line := range strings.Split(osd, "\n") {
		kv := strings.Split(strings.TrimRight(line, "\r"), ": ")
		if len(kv) != 2 {
			continue
		}
		field, ok := osdKeys[kv[0]]
		if !ok {
			continue
		}
		if v, ok := field.kind.parse(kv[1]); ok {
			result[field.name] = v
		}
	}
	return result
}

func (k osdKind) parse(s string) (any, bool) {
	switch k {
	case osdInt:
		if !isDigits(s) {
			return nil, false
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, false
		}
		return n, true
	case osdFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, false
		}
		return f, true
	}
	return s, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// readOutput reads one output file. Text is returned with trailing
// whitespace removed unless raw bytes were asked for.
func readOutput(path string, asBytes bool) (string, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	if asBytes {
		return "", data, nil
	}
	return strings.TrimRightFunc(string(data), unicode.IsSpace), nil, nil
}
