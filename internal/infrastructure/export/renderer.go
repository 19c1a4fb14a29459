// Package export renders tabular listings into downloadable documents.
package export

import (
	"context"
	"fmt"
)

// Format identifies a supported export document format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat validates a format string from the query parameter
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatXLSX, FormatPDF:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Extension returns the file extension for the format, without the dot
func (f Format) Extension() string {
	return string(f)
}

// Table is a fully materialized listing ready to render
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Renderer turns a table into document bytes
type Renderer interface {
	Render(ctx context.Context, table *Table) ([]byte, error)
}
