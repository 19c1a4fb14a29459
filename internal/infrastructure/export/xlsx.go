package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheetName = "Sheet1"

// XLSXRenderer writes the table as a single-sheet spreadsheet
type XLSXRenderer struct{}

var _ Renderer = (*XLSXRenderer)(nil)

// NewXLSXRenderer creates an XLSX renderer
func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

// Render writes a bold header row followed by the data rows
func (r *XLSXRenderer) Render(_ context.Context, table *Table) ([]byte, error) {
	if table == nil || len(table.Headers) == 0 {
		return nil, errors.New("export table requires at least a header row")
	}

	f := excelize.NewFile()
	defer f.Close()

	for col, header := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(xlsxSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("set header cell: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(table.Headers), 1)
		_ = f.SetCellStyle(xlsxSheetName, "A1", last, headerStyle)
	}

	for i, row := range table.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("data cell name: %w", err)
			}
			if err := f.SetCellValue(xlsxSheetName, cell, value); err != nil {
				return nil, fmt.Errorf("set data cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
