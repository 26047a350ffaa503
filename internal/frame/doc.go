// Package frame turns tesseract TSV output into tables.
//
// Parser is the ocr.FrameParser backed by gota data frames. WriteWorkbook
// exports decoded column data as an Excel workbook.
package frame
