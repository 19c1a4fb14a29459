package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
)

// CSVRenderer writes the table as RFC 4180 CSV with a header row
type CSVRenderer struct{}

var _ Renderer = (*CSVRenderer)(nil)

// NewCSVRenderer creates a CSV renderer
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

// Render writes header and data rows; the title is not part of CSV output
func (r *CSVRenderer) Render(_ context.Context, table *Table) ([]byte, error) {
	if table == nil || len(table.Headers) == 0 {
		return nil, errors.New("export table requires at least a header row")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(table.Headers); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
