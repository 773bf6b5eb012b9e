package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/binkeeper/binkeeper/internal/inventory"
	"github.com/binkeeper/binkeeper/internal/schema"
	"github.com/binkeeper/binkeeper/internal/tabular"
)

// ErrEmptyFile rejects uploads that decode to zero data rows. Distinct from
// MissingColumnsError: the file may simply have nothing under its header.
var ErrEmptyFile = errors.New("empty or invalid file")

// MissingColumnsError rejects an import whose header row satisfies no alias
// for one or more required canonical fields. Unmapped and Headers are
// diagnostics for the caller.
type MissingColumnsError struct {
	Missing  []string
	Unmapped []string
	Headers  []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Missing, ", "))
}

// ImportOutcome is the result of one file import. Success means the pipeline
// ran to completion, not that every row was accepted: a file with some bad
// rows and some good rows reports Success with a non-zero Errors count.
type ImportOutcome struct {
	Success      bool     `json:"success"`
	Created      int      `json:"created"`
	Errors       int      `json:"errors"`
	ErrorDetails []string `json:"errorDetails"`
}

// Import runs the full pipeline on one uploaded file: decode, map headers,
// validate rows in file order and bulk-create whatever validated. Row
// failures never abort the batch; structural failures (unsupported format,
// undecodable buffer, empty file, missing required columns) abort the whole
// import with nothing persisted.
func (s *Service) Import(ctx context.Context, filename string, buf []byte) (*ImportOutcome, error) {
	table, err := tabular.Parse(filename, buf)
	if err != nil {
		if errors.Is(err, tabular.ErrEmptyFile) {
			return nil, ErrEmptyFile
		}
		// Unsupported extensions pass through as tabular.ErrUnsupportedFormat;
		// everything else is a decode failure.
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	if len(table.Rows) == 0 {
		return nil, ErrEmptyFile
	}

	mapping := schema.MapHeaders(table.Headers)
	if len(mapping.Missing) > 0 {
		return nil, &MissingColumnsError{
			Missing:  mapping.Missing,
			Unmapped: mapping.Unmapped,
			Headers:  table.Headers,
		}
	}

	var (
		inputs    []inventory.CreateItemInput
		rowErrors []string
	)

	// Rows are processed strictly in file order so error messages carry the
	// right 1-indexed file line: the header is row 1, the first data row is
	// row 2.
	for i, row := range table.Rows {
		rowNum := i + 2

		candidate := buildCandidate(row, mapping.Mapped)
		if strings.TrimSpace(candidate.Description) == "" || strings.TrimSpace(candidate.BinLocation) == "" {
			rowErrors = append(rowErrors,
				fmt.Sprintf("Row %d: Missing required fields (description, bin location)", rowNum))
			continue
		}

		input, err := normalizeItemInput(candidate)
		if err != nil {
			rowErrors = append(rowErrors,
				fmt.Sprintf("Row %d: %s", rowNum, strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": ")))
			continue
		}

		inputs = append(inputs, input)
	}

	// Bulk creation is always attempted, even with zero valid rows; a
	// failure here is fatal for the whole request.
	created, err := s.store.CreateItems(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("bulk creating items: %w", err)
	}

	slog.Info("import completed",
		"file", filename,
		"created", len(created),
		"row_errors", len(rowErrors),
	)

	return &ImportOutcome{
		Success:      true,
		Created:      len(created),
		Errors:       len(rowErrors),
		ErrorDetails: rowErrors,
	}, nil
}

// buildCandidate assembles a raw creation input from one parsed row using
// the canonical-field-to-header mapping. Absent optional columns yield empty
// strings; an absent price yields nil.
func buildCandidate(row tabular.Row, mapped map[string]string) inventory.CreateItemInput {
	cell := func(field string) string {
		header, ok := mapped[field]
		if !ok {
			return ""
		}
		return row[header]
	}

	candidate := inventory.CreateItemInput{
		Description: cell(schema.FieldDescription),
		BinLocation: cell(schema.FieldBinLocation),
		Brand:       cell(schema.FieldBrand),
		Size:        cell(schema.FieldSize),
		Color:       cell(schema.FieldColor),
		Category:    cell(schema.FieldCategory),
		Condition:   cell(schema.FieldCondition),
		Notes:       cell(schema.FieldNotes),
	}
	if price := strings.TrimSpace(cell(schema.FieldPrice)); price != "" {
		candidate.Price = &price
	}
	return candidate
}
