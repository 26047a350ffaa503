package frame

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/ironsheep/tessbridge/internal/ocr"
)

// TextColumn is the TSV column that always stays a string column.
const TextColumn = "text"

// Table is a gota DataFrame that satisfies ocr.Frame.
type Table struct {
	dataframe.DataFrame
}

var _ ocr.Frame = Table{}

// Parser builds Tables from delimited engine output.
//
// Rows are split on the separator only; quote characters are kept as text.
// Rows shorter than the header are padded with empty cells, which gota reads
// as missing values.
type Parser struct {
	// StringColumns are kept as strings in addition to TextColumn.
	StringColumns []string
}

var _ ocr.FrameParser = (*Parser)(nil)

// ParseFrame implements ocr.FrameParser.
func (p *Parser) ParseFrame(data []byte, sep rune) (ocr.Frame, error) {
	records := splitRecords(string(data), string(sep))
	if len(records) == 0 {
		return nil, fmt.Errorf("empty table")
	}

	types := map[string]series.Type{}
	for _, name := range records[0] {
		if name == TextColumn {
			types[name] = series.String
		}
	}
	for _, name := range p.StringColumns {
		types[name] = series.String
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.WithTypes(types),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to load table: %w", df.Err)
	}
	return Table{DataFrame: df}, nil
}

// splitRecords splits text into rows of cells and pads each row to the
// header width.
func splitRecords(text, sep string) [][]string {
	text = strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	records := make([][]string, 0, len(lines))
	width := 0
	for i, line := range lines {
		cells := strings.Split(line, sep)
		if i == 0 {
			width = len(cells)
		}
		for len(cells) < width {
			cells = append(cells, "")
		}
		if len(cells) > width {
			cells = cells[:width]
		}
		records = append(records, cells)
	}
	return records
}
