// Package tabular turns uploaded spreadsheet buffers into ordered row
// records, one map from original header string to cell text per data row.
// Format-specific decoders are selected by file extension; every variant
// produces the same Table shape.
package tabular

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for file extensions no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Row maps a file's original header string to the cell text under it.
// Cell values are always text regardless of the source cell's native type.
type Row map[string]string

// Table is the decoded content of one uploaded file: the header row as it
// appeared in the file, and the data rows in file order.
type Table struct {
	Headers []string
	Rows    []Row
}

// Parse decodes buf into a Table using the decoder implied by filename's
// extension. Supported: .csv, .xlsx, .xls, .ods, .odt. A corrupt or
// unreadable buffer surfaces as an error, never as an empty table.
func Parse(filename string, buf []byte) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(buf)
	case ".xlsx":
		return ParseXLSX(buf)
	case ".xls":
		return ParseXLS(buf)
	case ".ods", ".odt":
		return ParseODS(buf)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// tableFromGrid builds a Table from a raw cell grid given the index of the
// header row. Rows whose every cell is empty after trimming are dropped, as
// are columns under an empty header.
func tableFromGrid(grid [][]string, headerIdx int) *Table {
	headers := make([]string, 0, len(grid[headerIdx]))
	for _, h := range grid[headerIdx] {
		if strings.TrimSpace(h) != "" {
			headers = append(headers, h)
		}
	}

	t := &Table{Headers: headers}
	for _, raw := range grid[headerIdx+1:] {
		if isEmptyRow(raw) {
			continue
		}
		row := make(Row, len(headers))
		col := 0
		for _, h := range grid[headerIdx] {
			var cell string
			if col < len(raw) {
				cell = raw[col]
			}
			col++
			if strings.TrimSpace(h) == "" {
				continue
			}
			row[h] = cell
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
