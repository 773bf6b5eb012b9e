// Package core holds the business logic: item validation, the spreadsheet
// import pipeline, export serialization and the bin integrity rules. It has
// no HTTP dependencies and talks to persistence through RecordStore.
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/binkeeper/binkeeper/internal/inventory"
)

// ErrInvalidInput is returned for request payloads that fail validation.
var ErrInvalidInput = errors.New("invalid input")

// BinInUseError rejects a bin rename or delete while items still reference
// the bin's current name. Count lets callers present "N items still
// reference this bin".
type BinInUseError struct {
	Name  string
	Count int
}

func (e *BinInUseError) Error() string {
	return fmt.Sprintf("%d item(s) still reference bin %q; move or delete them first", e.Count, e.Name)
}

// RecordStore is the persistence contract the service consumes. Implemented
// by *store.Store; tests substitute an in-memory fake.
type RecordStore interface {
	ListItems(ctx context.Context) ([]inventory.Item, error)
	GetItem(ctx context.Context, id string) (inventory.Item, error)
	CreateItem(ctx context.Context, in inventory.CreateItemInput) (inventory.Item, error)
	CreateItems(ctx context.Context, inputs []inventory.CreateItemInput) ([]inventory.Item, error)
	UpdateItem(ctx context.Context, id string, in inventory.UpdateItemInput) (inventory.Item, error)
	DeleteItem(ctx context.Context, id string) (bool, error)
	MarkItemSold(ctx context.Context, id string, in inventory.SellItemInput) (inventory.Item, error)
	SearchItems(ctx context.Context, query string) ([]inventory.Item, error)
	ItemsByBin(ctx context.Context, name string) ([]inventory.Item, error)

	ListBins(ctx context.Context) ([]inventory.Bin, error)
	GetBin(ctx context.Context, id string) (inventory.Bin, error)
	GetBinByName(ctx context.Context, name string) (inventory.Bin, error)
	CreateBin(ctx context.Context, in inventory.CreateBinInput) (inventory.Bin, error)
	UpdateBin(ctx context.Context, id string, in inventory.UpdateBinInput) (inventory.Bin, error)
	DeleteBin(ctx context.Context, id string) (bool, error)
	BinStats(ctx context.Context) ([]inventory.BinStat, error)
}

// Service wires the record store to the import/export pipeline and the
// integrity rules. One instance serves all requests.
type Service struct {
	store RecordStore
}

// NewService creates a Service on top of the given record store.
func NewService(store RecordStore) *Service {
	return &Service{store: store}
}

// ListItems returns every item, newest first.
func (s *Service) ListItems(ctx context.Context) ([]inventory.Item, error) {
	return s.store.ListItems(ctx)
}

// GetItem returns one item by id.
func (s *Service) GetItem(ctx context.Context, id string) (inventory.Item, error) {
	return s.store.GetItem(ctx, id)
}

// CreateItem validates and inserts one item.
func (s *Service) CreateItem(ctx context.Context, in inventory.CreateItemInput) (inventory.Item, error) {
	in, err := normalizeItemInput(in)
	if err != nil {
		return inventory.Item{}, err
	}
	return s.store.CreateItem(ctx, in)
}

// UpdateItem validates and applies a partial-field update.
func (s *Service) UpdateItem(ctx context.Context, id string, in inventory.UpdateItemInput) (inventory.Item, error) {
	in, err := normalizeItemUpdate(in)
	if err != nil {
		return inventory.Item{}, err
	}
	return s.store.UpdateItem(ctx, id, in)
}

// DeleteItem removes one item.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	ok, err := s.store.DeleteItem(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return inventory.ErrNotFound
	}
	return nil
}

// SellItem marks an item sold. The transition is terminal; selling a sold
// item surfaces inventory.ErrAlreadySold from the store.
func (s *Service) SellItem(ctx context.Context, id string, in inventory.SellItemInput) (inventory.Item, error) {
	if in.SoldPrice != nil {
		price, err := NormalizePrice(*in.SoldPrice)
		if err != nil {
			return inventory.Item{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		in.SoldPrice = price
	}
	return s.store.MarkItemSold(ctx, id, in)
}

// SearchItems returns items matching query case-insensitively across all
// text fields; an empty query returns everything.
func (s *Service) SearchItems(ctx context.Context, query string) ([]inventory.Item, error) {
	return s.store.SearchItems(ctx, query)
}

// ItemsByBin returns items referencing the given bin name.
func (s *Service) ItemsByBin(ctx context.Context, name string) ([]inventory.Item, error) {
	return s.store.ItemsByBin(ctx, name)
}

// ListBins returns all bins in numeric-aware name order.
func (s *Service) ListBins(ctx context.Context) ([]inventory.Bin, error) {
	return s.store.ListBins(ctx)
}

// GetBin returns one bin by id.
func (s *Service) GetBin(ctx context.Context, id string) (inventory.Bin, error) {
	return s.store.GetBin(ctx, id)
}

// BinStats returns the derived per-bin aggregates.
func (s *Service) BinStats(ctx context.Context) ([]inventory.BinStat, error) {
	return s.store.BinStats(ctx)
}
