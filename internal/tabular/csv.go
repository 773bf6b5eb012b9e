package tabular

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrEmptyFile is returned when a delimited-text buffer contains no
// non-blank lines at all.
var ErrEmptyFile = errors.New("file contains no rows")

// ParseCSV decodes a comma-delimited text buffer. Rows are split on
// newlines and blank lines dropped; the first non-blank line is the header
// row. Fields are comma-split with one layer of surrounding double quotes
// stripped. Quoted commas and escaped quotes are deliberately not handled;
// exports from this application never produce them inside a field.
func ParseCSV(buf []byte) (*Table, error) {
	buf = sanitizeUTF8(buf)

	var lines []string
	for _, line := range strings.Split(string(buf), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyFile
	}

	grid := make([][]string, 0, len(lines))
	for _, line := range lines {
		grid = append(grid, splitCSVLine(line))
	}

	return tableFromGrid(grid, 0), nil
}

// splitCSVLine comma-splits one line and strips a single layer of
// surrounding double quotes from each field.
func splitCSVLine(line string) []string {
	parts := strings.Split(line, ",")
	fields := make([]string, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) >= 2 && strings.HasPrefix(p, `"`) && strings.HasSuffix(p, `"`) {
			p = p[1 : len(p)-1]
		}
		fields[i] = p
	}
	return fields
}

// sanitizeUTF8 replaces invalid byte sequences with the Unicode replacement
// character so downstream string handling never sees broken encoding.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var b bytes.Buffer
	b.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			b.WriteRune('�')
			data = data[1:]
		} else {
			b.WriteRune(r)
			data = data[size:]
		}
	}
	return b.Bytes()
}
