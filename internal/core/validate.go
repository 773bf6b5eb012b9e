package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/binkeeper/binkeeper/internal/inventory"
)

// NormalizePrice parses a raw price string into a canonical two-fraction-
// digit decimal string. Currency symbols and thousands separators are
// tolerated since spreadsheet exports routinely carry them. Empty input
// normalizes to nil (no price).
func NormalizePrice(raw string) (*string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}

	for _, symbol := range []string{"$", "€", "£", ","} {
		s = strings.ReplaceAll(s, symbol, "")
	}
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q", raw)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative: %q", raw)
	}

	v := d.StringFixed(2)
	return &v, nil
}

// normalizeItemInput trims every text field, enforces the required fields
// and coerces the price. Used by both the create handler and each import
// row, so the two paths cannot drift apart.
func normalizeItemInput(in inventory.CreateItemInput) (inventory.CreateItemInput, error) {
	in.Description = strings.TrimSpace(in.Description)
	in.BinLocation = strings.TrimSpace(in.BinLocation)
	in.Brand = strings.TrimSpace(in.Brand)
	in.Size = strings.TrimSpace(in.Size)
	in.Color = strings.TrimSpace(in.Color)
	in.Category = strings.TrimSpace(in.Category)
	in.Condition = strings.TrimSpace(in.Condition)
	in.Notes = strings.TrimSpace(in.Notes)

	if in.Description == "" {
		return in, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if in.BinLocation == "" {
		return in, fmt.Errorf("%w: bin location is required", ErrInvalidInput)
	}

	if in.Price != nil {
		price, err := NormalizePrice(*in.Price)
		if err != nil {
			return in, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		in.Price = price
	}

	return in, nil
}

// normalizeItemUpdate trims and validates the fields a partial update
// carries. Required fields may not be blanked out.
func normalizeItemUpdate(in inventory.UpdateItemInput) (inventory.UpdateItemInput, error) {
	if in.Empty() {
		return in, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		return &v
	}

	in.Description = trim(in.Description)
	in.BinLocation = trim(in.BinLocation)
	in.Brand = trim(in.Brand)
	in.Size = trim(in.Size)
	in.Color = trim(in.Color)
	in.Category = trim(in.Category)
	in.Condition = trim(in.Condition)
	in.Notes = trim(in.Notes)

	if in.Description != nil && *in.Description == "" {
		return in, fmt.Errorf("%w: description cannot be empty", ErrInvalidInput)
	}
	if in.BinLocation != nil && *in.BinLocation == "" {
		return in, fmt.Errorf("%w: bin location cannot be empty", ErrInvalidInput)
	}

	if in.Price != nil {
		price, err := NormalizePrice(*in.Price)
		if err != nil {
			return in, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		in.Price = price
	}

	return in, nil
}
