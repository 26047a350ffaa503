package ocr

import "strings"

// OutputKind identifies a file tesseract writes next to the output base.
type OutputKind string

const (
	KindText OutputKind = "txt"
	KindBox  OutputKind = "box"
	KindTSV  OutputKind = "tsv"
	KindOSD  OutputKind = "osd"
	KindALTO OutputKind = "xml"
	KindHOCR OutputKind = "hocr"
	KindPDF  OutputKind = "pdf"
)

// Extension returns the file extension tesseract uses for the kind.
func (k OutputKind) Extension() string {
	return string(k)
}

// implicit reports whether the kind is selected purely through config flags
// and must not be passed to tesseract as a positional config name.
func (k OutputKind) implicit() bool {
	switch k {
	case KindBox, KindOSD, KindTSV, KindALTO:
		return true
	}
	return false
}

// binary reports whether the kind is always returned as raw bytes.
func (k OutputKind) binary() bool {
	return k == KindPDF || k == KindHOCR
}

// engineFlags returns the -c variables and trailing config files that make
// tesseract produce the kind.
func (k OutputKind) engineFlags() (vars []string, configFiles []string) {
	switch k {
	case KindBox:
		return []string{"tessedit_create_boxfile=1"}, []string{"batch.nochop", "makebox"}
	case KindALTO:
		return []string{"tessedit_create_alto=1"}, nil
	case KindHOCR:
		return []string{"tessedit_create_hocr=1"}, nil
	case KindTSV:
		return []string{"tessedit_create_tsv=1"}, nil
	}
	return nil, nil
}

// ParseOutputKind maps an extension such as "pdf" or "hocr" to its kind.
func ParseOutputKind(s string) (OutputKind, bool) {
	k := OutputKind(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	switch k {
	case KindText, KindBox, KindTSV, KindOSD, KindALTO, KindHOCR, KindPDF:
		return k, true
	}
	return "", false
}

// joinKinds renders kinds the way the command builder consumes them.
func joinKinds(kinds []OutputKind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, " ")
}

// OutputType selects the representation a facade method returns.
type OutputType int

const (
	// OutputString returns the decoded text.
	OutputString OutputType = iota
	// OutputBytes returns the raw file contents.
	OutputBytes
	// OutputDict returns a column mapping (TSV, boxes) or field mapping (OSD, text).
	OutputDict
	// OutputDataFrame returns a Frame built by the configured FrameParser.
	OutputDataFrame
)

func (t OutputType) String() string {
	switch t {
	case OutputString:
		return "string"
	case OutputBytes:
		return "bytes"
	case OutputDict:
		return "dict"
	case OutputDataFrame:
		return "data.frame"
	}
	return "unknown"
}

// Output is the decoded result of one tesseract run. Exactly one payload
// field is populated, selected by Type.
type Output struct {
	Type OutputType `json:"type"`
	Kind OutputKind `json:"kind"`

	Text   string         `json:"text,omitempty"`
	Raw    []byte         `json:"raw,omitempty"`
	Dict   *Dict          `json:"dict,omitempty"`
	Fields map[string]any `json:"fields,omitempty"`
	Frame  Frame          `json:"-"`
}

// Frame is the tabular view returned for OutputDataFrame.
type Frame interface {
	Names() []string
	Nrow() int
	Ncol() int
}

// FrameParser builds a Frame from delimited engine output. Implementations
// must not process quote characters.
type FrameParser interface {
	ParseFrame(data []byte, sep rune) (Frame, error)
}
