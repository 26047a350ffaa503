package frame

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ironsheep/tessbridge/internal/ocr"
)

// SheetName is the worksheet WriteWorkbook fills.
const SheetName = "data"

// WriteWorkbook writes dict to w as an .xlsx workbook with one header row
// and one row per record. Short columns leave their trailing cells empty.
func WriteWorkbook(w io.Writer, dict *ocr.Dict) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for col, key := range dict.Keys {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, key); err != nil {
			return err
		}

		for row, v := range dict.Column(key) {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
