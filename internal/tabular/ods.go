package tabular

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxCellRepeat caps table:number-columns-repeated expansion. ODF writers
// pad rows with huge repeat counts on trailing empty cells; expanding those
// verbatim would allocate gigabytes for nothing.
const maxCellRepeat = 1024

// ParseODS decodes an OpenDocument spreadsheet package (.ods, or .odt files
// carrying a spreadsheet body). The format is a zip holding content.xml;
// cell text lives in text:p children of table:table-cell elements.
func ParseODS(buf []byte) (*Table, error) {
	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, fmt.Errorf("opening ods package: %w", err)
	}

	var content io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "content.xml" {
			content, err = f.Open()
			if err != nil {
				return nil, fmt.Errorf("opening content.xml: %w", err)
			}
			break
		}
	}
	if content == nil {
		return nil, errors.New("ods package has no content.xml")
	}
	defer content.Close()

	sheets, err := decodeODSContent(content)
	if err != nil {
		return nil, fmt.Errorf("decoding ods content: %w", err)
	}
	if len(sheets) == 0 {
		return nil, errors.New("ods document has no sheets")
	}

	sheet := sheets[0]
	for _, s := range sheets {
		if s.name == masterSheetName {
			sheet = s
			break
		}
	}
	if len(sheet.grid) == 0 {
		return &Table{}, nil
	}

	return tableFromGrid(sheet.grid, findHeaderRow(sheet.grid)), nil
}

type odsSheet struct {
	name string
	grid [][]string
}

// decodeODSContent walks the content.xml token stream collecting every
// table:table element into a cell grid. Only element local names are
// matched; the ODF namespace prefixes are noise for our purposes.
func decodeODSContent(r io.Reader) ([]odsSheet, error) {
	dec := xml.NewDecoder(r)

	var (
		sheets   []odsSheet
		row      []string
		cellText strings.Builder
		repeat   int
		inCell   bool
		inSheet  bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "table":
				sheets = append(sheets, odsSheet{name: attrLocal(el, "name")})
				inSheet = true
			case "table-row":
				row = nil
			case "table-cell", "covered-table-cell":
				inCell = true
				cellText.Reset()
				repeat = 1
				if v := attrLocal(el, "number-columns-repeated"); v != "" {
					if n, err := strconv.Atoi(v); err == nil && n > 1 {
						repeat = n
						if repeat > maxCellRepeat {
							repeat = maxCellRepeat
						}
					}
				}
			}
		case xml.CharData:
			if inCell {
				cellText.Write(el)
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "table-cell", "covered-table-cell":
				inCell = false
				text := cellText.String()
				// Repeated empties must still be expanded so later cells
				// keep their column position; the trailing run is trimmed
				// when the row closes.
				for i := 0; i < repeat; i++ {
					row = append(row, text)
				}
			case "table-row":
				if inSheet {
					sheets[len(sheets)-1].grid = append(sheets[len(sheets)-1].grid, trimTrailingEmpty(row))
				}
			case "table":
				inSheet = false
			}
		}
	}

	return sheets, nil
}

func attrLocal(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func trimTrailingEmpty(row []string) []string {
	end := len(row)
	for end > 0 && strings.TrimSpace(row[end-1]) == "" {
		end--
	}
	return row[:end]
}
