package tabular

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// masterSheetName is the sheet (and banner cell) name exports conventionally
// use. Workbooks carrying it get that sheet; everything else falls back to
// the first sheet.
const masterSheetName = "Master Inventory"

// headerSearchRows is how many leading rows are scanned for the real header
// row before falling back to row 0. Spreadsheets exported from templates
// often carry title or banner rows above the headers.
const headerSearchRows = 5

// ParseXLSX decodes a packaged-XML Excel workbook.
func ParseXLSX(buf []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("opening xlsx workbook: %w", err)
	}
	defer f.Close()

	sheet := pickSheet(f.GetSheetList())
	if sheet == "" {
		return nil, errors.New("xlsx workbook has no sheets")
	}

	grid, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading xlsx sheet %q: %w", sheet, err)
	}
	if len(grid) == 0 {
		return &Table{}, nil
	}

	return tableFromGrid(grid, findHeaderRow(grid)), nil
}

// ParseXLS decodes a legacy binary (BIFF) Excel workbook.
func ParseXLS(buf []byte) (*Table, error) {
	wb, err := xls.OpenReader(bytes.NewReader(buf), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("opening xls workbook: %w", err)
	}

	var sheet *xls.WorkSheet
	for i := 0; i < wb.NumSheets(); i++ {
		if s := wb.GetSheet(i); s != nil && s.Name == masterSheetName {
			sheet = s
			break
		}
	}
	if sheet == nil {
		sheet = wb.GetSheet(0)
	}
	if sheet == nil {
		return nil, errors.New("xls workbook has no sheets")
	}

	grid := make([][]string, 0, int(sheet.MaxRow)+1)
	for r := 0; r <= int(sheet.MaxRow); r++ {
		row := sheet.Row(r)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol()+1)
		for c := 0; c <= row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		grid = append(grid, cells)
	}
	if len(grid) == 0 {
		return &Table{}, nil
	}

	return tableFromGrid(grid, findHeaderRow(grid)), nil
}

// pickSheet selects the sheet named exactly "Master Inventory" when present,
// else the first sheet.
func pickSheet(names []string) string {
	for _, name := range names {
		if name == masterSheetName {
			return name
		}
	}
	if len(names) > 0 {
		return names[0]
	}
	return ""
}

// findHeaderRow scans the first headerSearchRows rows and returns the first
// one holding at least two non-empty cells, not counting a literal
// "Master Inventory" banner cell. Falls back to row 0 when none qualifies.
func findHeaderRow(grid [][]string) int {
	limit := headerSearchRows
	if len(grid) < limit {
		limit = len(grid)
	}
	for i := 0; i < limit; i++ {
		filled := 0
		for _, cell := range grid[i] {
			cell = strings.TrimSpace(cell)
			if cell == "" || cell == masterSheetName {
				continue
			}
			filled++
		}
		if filled >= 2 {
			return i
		}
	}
	return 0
}
