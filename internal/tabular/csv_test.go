package tabular

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseCSV_Basic(t *testing.T) {
	buf := []byte("Description,Bin,Price\nBlue sweater,Bin-1,12.50\nRed scarf,Bin-2,8\n")

	table, err := ParseCSV(buf)
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}

	wantHeaders := []string{"Description", "Bin", "Price"}
	if !reflect.DeepEqual(table.Headers, wantHeaders) {
		t.Errorf("headers = %v, want %v", table.Headers, wantHeaders)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0]["Description"] != "Blue sweater" {
		t.Errorf("row 0 description = %q", table.Rows[0]["Description"])
	}
	if table.Rows[1]["Price"] != "8" {
		t.Errorf("row 1 price = %q", table.Rows[1]["Price"])
	}
}

func TestParseCSV_QuotedFields(t *testing.T) {
	buf := []byte("Description,Bin\n\"Shoe\",\"Bin-1\"\n")

	table, err := ParseCSV(buf)
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}
	if got := table.Rows[0]["Description"]; got != "Shoe" {
		t.Errorf("expected one quote layer stripped, got %q", got)
	}
	if got := table.Rows[0]["Bin"]; got != "Bin-1" {
		t.Errorf("bin = %q, want Bin-1", got)
	}
}

func TestParseCSV_BlankLinesAndCRLF(t *testing.T) {
	buf := []byte("Description,Bin\r\n\r\nShoe,Bin-1\r\n   \r\nHat,Bin-2\r\n")

	table, err := ParseCSV(buf)
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected blank lines dropped, got %d rows", len(table.Rows))
	}
	if table.Rows[1]["Description"] != "Hat" {
		t.Errorf("row 1 description = %q", table.Rows[1]["Description"])
	}
}

func TestParseCSV_ShortRowsPadded(t *testing.T) {
	buf := []byte("Description,Bin,Notes\nShoe,Bin-1\n")

	table, err := ParseCSV(buf)
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}
	if got, ok := table.Rows[0]["Notes"]; !ok || got != "" {
		t.Errorf("expected missing trailing cell as empty string, got %q (present=%v)", got, ok)
	}
}

func TestParseCSV_Empty(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{"zero bytes", nil},
		{"only whitespace", []byte("  \n \r\n\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(tt.buf)
			if !errors.Is(err, ErrEmptyFile) {
				t.Errorf("expected ErrEmptyFile, got %v", err)
			}
		})
	}
}

func TestParseCSV_InvalidUTF8(t *testing.T) {
	buf := []byte("Description,Bin\nSho\xffe,Bin-1\n")

	table, err := ParseCSV(buf)
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}
	if got := table.Rows[0]["Description"]; got != "Sho�e" {
		t.Errorf("expected replacement character, got %q", got)
	}
}

func TestParse_DispatchByExtension(t *testing.T) {
	buf := []byte("Description,Bin\nShoe,Bin-1\n")

	table, err := Parse("Upload.CSV", buf)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Errorf("expected 1 row, got %d", len(table.Rows))
	}
}

func TestParse_UnsupportedFormat(t *testing.T) {
	tests := []string{"inventory.pdf", "inventory.txt", "inventory"}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(name, []byte("whatever"))
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("expected ErrUnsupportedFormat, got %v", err)
			}
		})
	}
}

func TestTableFromGrid_DropsEmptyHeaderColumns(t *testing.T) {
	grid := [][]string{
		{"Description", "", "Bin"},
		{"Shoe", "stray", "Bin-1"},
	}

	table := tableFromGrid(grid, 0)

	if !reflect.DeepEqual(table.Headers, []string{"Description", "Bin"}) {
		t.Errorf("headers = %v", table.Headers)
	}
	if table.Rows[0]["Bin"] != "Bin-1" {
		t.Errorf("column alignment lost: bin = %q", table.Rows[0]["Bin"])
	}
	if _, ok := table.Rows[0][""]; ok {
		t.Error("empty header column should not appear in rows")
	}
}

func TestTableFromGrid_DropsEmptyRows(t *testing.T) {
	grid := [][]string{
		{"Description", "Bin"},
		{"", "  "},
		{"Shoe", "Bin-1"},
	}

	table := tableFromGrid(grid, 0)

	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
}
