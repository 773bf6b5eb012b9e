package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/binkeeper/binkeeper/internal/inventory"
)

// ExportRequest selects the serialization format and optional filters.
// Format defaults to CSV.
type ExportRequest struct {
	Format   string
	Bin      string
	Category string
}

// ExportFile is a rendered export ready to be served as an attachment.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// itemFieldOrder fixes the CSV column order: the serialized item field keys.
var itemFieldOrder = []string{
	"id", "description", "binLocation", "brand", "size", "color",
	"category", "condition", "price", "notes", "status",
	"soldDate", "soldPrice", "createdAt", "updatedAt",
}

// Export serializes the (optionally filtered) item collection. The output is
// deterministic: exporting twice with no intervening writes yields identical
// bytes.
func (s *Service) Export(ctx context.Context, req ExportRequest) (*ExportFile, error) {
	var items []inventory.Item
	var err error
	if req.Bin != "" {
		items, err = s.store.ItemsByBin(ctx, req.Bin)
	} else {
		items, err = s.store.ListItems(ctx)
	}
	if err != nil {
		return nil, err
	}

	if req.Category != "" {
		filtered := items[:0]
		for _, it := range items {
			if strings.EqualFold(it.Category, req.Category) {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	switch strings.ToLower(req.Format) {
	case "", "csv":
		return &ExportFile{
			Name:        "inventory-export.csv",
			ContentType: "text/csv",
			Data:        renderCSV(items),
		}, nil
	case "json":
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding export: %w", err)
		}
		return &ExportFile{
			Name:        "inventory-export.json",
			ContentType: "application/json",
			Data:        data,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", ErrInvalidInput, req.Format)
	}
}

// renderCSV writes the header row as plain field keys, then every data value
// double-quoted with internal quotes doubled.
func renderCSV(items []inventory.Item) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(itemFieldOrder, ","))
	b.WriteString("\n")

	for _, it := range items {
		values := itemFieldValues(it)
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
		}
		b.WriteString(strings.Join(quoted, ","))
		b.WriteString("\n")
	}

	return []byte(b.String())
}

// itemFieldValues renders one item's values in itemFieldOrder.
func itemFieldValues(it inventory.Item) []string {
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	formatTime := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format(time.RFC3339)
	}

	return []string{
		it.ID,
		it.Description,
		it.BinLocation,
		it.Brand,
		it.Size,
		it.Color,
		it.Category,
		it.Condition,
		deref(it.Price),
		it.Notes,
		it.Status,
		formatTime(it.SoldDate),
		deref(it.SoldPrice),
		it.CreatedAt.Format(time.RFC3339),
		it.UpdatedAt.Format(time.RFC3339),
	}
}
