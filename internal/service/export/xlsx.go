// Package export renders back-office records as spreadsheet downloads.
package export

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Row is implemented by records that can be written as a spreadsheet row.
type Row[T any] interface {
	*T
	ExportRow() []any
}

// Rows converts records into spreadsheet rows in order.
func Rows[T any, P Row[T]](items []T) [][]any {
	rows := make([][]any, 0, len(items))
	for i := range items {
		rows = append(rows, P(&items[i]).ExportRow())
	}
	return rows
}

// Workbook builds a single-sheet workbook with a bold header row.
func Workbook(sheet string, headers []string, rows [][]any) ([]byte, error) {
	if sheet == "" {
		return nil, errors.New("sheet name is empty")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("style header row: %w", err)
	}

	for i, row := range rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}
