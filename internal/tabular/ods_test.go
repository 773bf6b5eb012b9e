package tabular

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// buildODS assembles a minimal OpenDocument spreadsheet package. Cells are
// raw content.xml fragments so tests can exercise repeat attributes directly.
func buildODS(t *testing.T, sheets map[string]string) []byte {
	t.Helper()

	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	body.WriteString(`<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">`)
	body.WriteString(`<office:body><office:spreadsheet>`)
	for name, rows := range sheets {
		fmt.Fprintf(&body, `<table:table table:name="%s">%s</table:table>`, name, rows)
	}
	body.WriteString(`</office:spreadsheet></office:body></office:document-content>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("content.xml")
	if err != nil {
		t.Fatalf("creating content.xml: %v", err)
	}
	if _, err := w.Write([]byte(body.String())); err != nil {
		t.Fatalf("writing content.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

func odsRow(cells ...string) string {
	var b strings.Builder
	b.WriteString("<table:table-row>")
	for _, c := range cells {
		fmt.Fprintf(&b, "<table:table-cell><text:p>%s</text:p></table:table-cell>", c)
	}
	b.WriteString("</table:table-row>")
	return b.String()
}

func TestParseODS_Basic(t *testing.T) {
	buf := buildODS(t, map[string]string{
		"Sheet1": odsRow("Description", "Bin") + odsRow("Shoe", "Bin-1"),
	})

	table, err := ParseODS(buf)
	if err != nil {
		t.Fatalf("ParseODS returned error: %v", err)
	}
	if len(table.Headers) != 2 || table.Headers[0] != "Description" {
		t.Errorf("headers = %v", table.Headers)
	}
	if len(table.Rows) != 1 || table.Rows[0]["Bin"] != "Bin-1" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestParseODS_RepeatedCellsKeepColumnAlignment(t *testing.T) {
	rows := odsRow("Description", "Brand", "Bin") +
		`<table:table-row>` +
		`<table:table-cell><text:p>Shoe</text:p></table:table-cell>` +
		`<table:table-cell table:number-columns-repeated="1"/>` +
		`<table:table-cell><text:p>Bin-1</text:p></table:table-cell>` +
		`</table:table-row>`

	buf := buildODS(t, map[string]string{"Sheet1": rows})

	table, err := ParseODS(buf)
	if err != nil {
		t.Fatalf("ParseODS returned error: %v", err)
	}
	row := table.Rows[0]
	if row["Brand"] != "" {
		t.Errorf("brand = %q, want empty", row["Brand"])
	}
	if row["Bin"] != "Bin-1" {
		t.Errorf("bin = %q, column alignment lost across empty cell", row["Bin"])
	}
}

func TestParseODS_TrailingRepeatTrimmed(t *testing.T) {
	rows := odsRow("Description", "Bin") +
		`<table:table-row>` +
		`<table:table-cell><text:p>Shoe</text:p></table:table-cell>` +
		`<table:table-cell><text:p>Bin-1</text:p></table:table-cell>` +
		`<table:table-cell table:number-columns-repeated="16384"/>` +
		`</table:table-row>`

	buf := buildODS(t, map[string]string{"Sheet1": rows})

	table, err := ParseODS(buf)
	if err != nil {
		t.Fatalf("ParseODS returned error: %v", err)
	}
	if len(table.Rows) != 1 || table.Rows[0]["Bin"] != "Bin-1" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestParseODS_PrefersMasterInventorySheet(t *testing.T) {
	buf := buildODS(t, map[string]string{
		"Summary":          odsRow("Wrong", "Sheet") + odsRow("x", "y"),
		"Master Inventory": odsRow("Description", "Bin") + odsRow("Shoe", "Bin-1"),
	})

	table, err := ParseODS(buf)
	if err != nil {
		t.Fatalf("ParseODS returned error: %v", err)
	}
	if table.Rows[0]["Description"] != "Shoe" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestParseODS_NotAZip(t *testing.T) {
	if _, err := ParseODS([]byte("plain text")); err == nil {
		t.Error("expected error for non-zip buffer")
	}
}
