package inventory

import "time"

// Bin is a named, color-coded storage location. Names are unique
// case-insensitively; items point at bins by name, so the name doubles as the
// reference key.
type Bin struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateBinInput is the payload for inserting one bin.
type CreateBinInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// UpdateBinInput is a partial-field bin update.
type UpdateBinInput struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// BinStat is the derived per-bin aggregate: how many items reference the bin
// name and when the most recent of them was touched.
type BinStat struct {
	BinLocation string     `json:"binLocation"`
	ItemCount   int        `json:"itemCount"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

// DefaultBinColor is the color assigned to Bin-0 and used as the fallback for
// any bin created without an explicit color.
const DefaultBinColor = "#808080"

// DefaultBinPalette holds the 31 seed colors for Bin-0 through Bin-30.
// Index 0 is always gray.
var DefaultBinPalette = [31]string{
	DefaultBinColor,
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c", "#fabebe",
	"#008080", "#e6beff", "#9a6324", "#fffac8", "#800000",
	"#aaffc3", "#808000", "#ffd8b1", "#000075", "#a9a9a9",
	"#2f4f4f", "#8b4513", "#228b22", "#483d8b", "#b8860b",
	"#5f9ea0", "#9932cc", "#cd5c5c", "#2e8b57", "#6a5acd",
}
