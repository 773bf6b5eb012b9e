// Package inventory defines the domain records the rest of the application
// moves around: items and the storage bins they live in.
package inventory

import "time"

// Item statuses. The sold status is terminal: there is no un-sell transition.
const (
	StatusActive = "active"
	StatusSold   = "sold"
)

// Item is a single tracked inventory record. BinLocation is a denormalized
// copy of a bin's name, not a foreign key; the integrity rules in core guard
// bin mutations against orphaning it.
type Item struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	BinLocation string     `json:"binLocation"`
	Brand       string     `json:"brand,omitempty"`
	Size        string     `json:"size,omitempty"`
	Color       string     `json:"color,omitempty"`
	Category    string     `json:"category,omitempty"`
	Condition   string     `json:"condition,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Price       *string    `json:"price,omitempty"`
	Status      string     `json:"status"`
	SoldDate    *time.Time `json:"soldDate,omitempty"`
	SoldPrice   *string    `json:"soldPrice,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateItemInput is the payload for inserting one item, whether from a CRUD
// request or one validated import row. Price is a normalized decimal string
// with two fraction digits (nil when absent).
type CreateItemInput struct {
	Description string  `json:"description"`
	BinLocation string  `json:"binLocation"`
	Brand       string  `json:"brand"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
	Category    string  `json:"category"`
	Condition   string  `json:"condition"`
	Notes       string  `json:"notes"`
	Price       *string `json:"price"`
}

// UpdateItemInput is a partial-field item update. Nil fields are left
// untouched.
type UpdateItemInput struct {
	Description *string `json:"description"`
	BinLocation *string `json:"binLocation"`
	Brand       *string `json:"brand"`
	Size        *string `json:"size"`
	Color       *string `json:"color"`
	Category    *string `json:"category"`
	Condition   *string `json:"condition"`
	Notes       *string `json:"notes"`
	Price       *string `json:"price"`
}

// Empty reports whether the update carries no fields at all.
func (u UpdateItemInput) Empty() bool {
	return u.Description == nil && u.BinLocation == nil && u.Brand == nil &&
		u.Size == nil && u.Color == nil && u.Category == nil &&
		u.Condition == nil && u.Notes == nil && u.Price == nil
}

// SellItemInput carries the optional sold transition parameters. SoldDate
// defaults to the server clock when nil.
type SellItemInput struct {
	SoldPrice *string    `json:"soldPrice"`
	SoldDate  *time.Time `json:"soldDate"`
}
