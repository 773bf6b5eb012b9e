// Package schema defines the canonical item fields the import pipeline can
// populate and maps uploaded-file column headers onto them via alias tables.
package schema

import "strings"

// Canonical field names. These are the only item attributes an import can
// supply; everything else (id, status, timestamps) is server-assigned.
const (
	FieldDescription = "description"
	FieldBinLocation = "binLocation"
	FieldBrand       = "brand"
	FieldSize        = "size"
	FieldColor       = "color"
	FieldCategory    = "category"
	FieldCondition   = "condition"
	FieldPrice       = "price"
	FieldNotes       = "notes"
)

// Field describes one canonical field: whether it must be present in an
// uploaded file and which header spellings supply it. Aliases are scanned in
// declared order; the first file header matching an alias wins, so earlier
// aliases take priority when a file carries more than one candidate column.
type Field struct {
	Name     string
	Required bool
	Aliases  []string
}

// Fields is the full canonical field table, in serialization order.
// Adding a field or an accepted header spelling is a data change here.
var Fields = []Field{
	{
		Name:     FieldDescription,
		Required: true,
		Aliases:  []string{"description", "desc", "item", "item name", "name", "title", "product"},
	},
	{
		Name:     FieldBinLocation,
		Required: true,
		Aliases:  []string{"bin_location", "bin location", "bin", "location", "storage", "storage location", "box", "container"},
	},
	{
		Name:    FieldBrand,
		Aliases: []string{"brand", "make", "maker", "manufacturer", "label"},
	},
	{
		Name:    FieldSize,
		Aliases: []string{"size", "sz", "dimensions"},
	},
	{
		Name:    FieldColor,
		Aliases: []string{"color", "colour", "colors"},
	},
	{
		Name:    FieldCategory,
		Aliases: []string{"category", "type", "kind", "department", "group"},
	},
	{
		Name:    FieldCondition,
		Aliases: []string{"condition", "cond", "state", "quality"},
	},
	{
		Name:    FieldPrice,
		Aliases: []string{"price", "cost", "value", "amount", "listing price", "asking price"},
	},
	{
		Name:    FieldNotes,
		Aliases: []string{"notes", "note", "comments", "comment", "remarks", "details"},
	},
}

// MapResult is the outcome of matching a file's headers against the canonical
// field table.
type MapResult struct {
	// Mapped holds, per canonical field, the original (non-normalized) file
	// header that supplies it.
	Mapped map[string]string
	// Unmapped lists file headers that matched no canonical field, in file
	// order. Informational only.
	Unmapped []string
	// Missing lists required canonical fields no file header satisfied.
	// Non-empty Missing means the import must be rejected before any row is
	// parsed.
	Missing []string
}

// Normalize reduces a header or alias to its comparison form: lowercase,
// trimmed, with every character outside [a-z0-9] removed. Two headers match
// iff their normalized forms are identical.
func Normalize(header string) string {
	header = strings.ToLower(strings.TrimSpace(header))
	var b strings.Builder
	b.Grow(len(header))
	for _, r := range header {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MapHeaders matches the given file headers against the canonical field
// table. For each canonical field the alias list is scanned in declared
// order and the first header whose normalized form matches is taken; alias
// order, not file column order, breaks ties.
func MapHeaders(headers []string) MapResult {
	// Normalized header -> original spelling. First occurrence wins when a
	// file repeats the same header.
	byNorm := make(map[string]string, len(headers))
	for _, h := range headers {
		n := Normalize(h)
		if n == "" {
			continue
		}
		if _, ok := byNorm[n]; !ok {
			byNorm[n] = h
		}
	}

	result := MapResult{Mapped: make(map[string]string, len(Fields))}
	claimed := make(map[string]bool, len(headers))

	for _, field := range Fields {
		for _, alias := range field.Aliases {
			if original, ok := byNorm[Normalize(alias)]; ok {
				result.Mapped[field.Name] = original
				claimed[original] = true
				break
			}
		}
		if _, ok := result.Mapped[field.Name]; !ok && field.Required {
			result.Missing = append(result.Missing, field.Name)
		}
	}

	for _, h := range headers {
		if !claimed[h] {
			result.Unmapped = append(result.Unmapped, h)
		}
	}

	return result
}

// RequiredFields returns the canonical fields an import file must supply.
func RequiredFields() []string {
	var required []string
	for _, f := range Fields {
		if f.Required {
			required = append(required, f.Name)
		}
	}
	return required
}
