package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/binkeeper/binkeeper/internal/inventory"
)

// fakeStore is an in-memory RecordStore for service tests.
type fakeStore struct {
	items []inventory.Item
	bins  []inventory.Bin

	nextID int
	clock  time.Time

	createItemsErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		clock: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) newID() string {
	f.nextID++
	return fmt.Sprintf("id-%d", f.nextID)
}

func (f *fakeStore) ListItems(ctx context.Context) ([]inventory.Item, error) {
	return append([]inventory.Item(nil), f.items...), nil
}

func (f *fakeStore) GetItem(ctx context.Context, id string) (inventory.Item, error) {
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return inventory.Item{}, inventory.ErrNotFound
}

func (f *fakeStore) CreateItem(ctx context.Context, in inventory.CreateItemInput) (inventory.Item, error) {
	item := inventory.Item{
		ID:          f.newID(),
		Description: in.Description,
		BinLocation: in.BinLocation,
		Brand:       in.Brand,
		Size:        in.Size,
		Color:       in.Color,
		Category:    in.Category,
		Condition:   in.Condition,
		Notes:       in.Notes,
		Price:       in.Price,
		Status:      inventory.StatusActive,
		CreatedAt:   f.clock,
		UpdatedAt:   f.clock,
	}
	f.items = append(f.items, item)
	return item, nil
}

func (f *fakeStore) CreateItems(ctx context.Context, inputs []inventory.CreateItemInput) ([]inventory.Item, error) {
	if f.createItemsErr != nil {
		return nil, f.createItemsErr
	}
	created := make([]inventory.Item, 0, len(inputs))
	for _, in := range inputs {
		item, err := f.CreateItem(ctx, in)
		if err != nil {
			return nil, err
		}
		created = append(created, item)
	}
	return created, nil
}

func (f *fakeStore) UpdateItem(ctx context.Context, id string, in inventory.UpdateItemInput) (inventory.Item, error) {
	for i := range f.items {
		if f.items[i].ID != id {
			continue
		}
		it := &f.items[i]
		apply := func(dst *string, src *string) {
			if src != nil {
				*dst = *src
			}
		}
		apply(&it.Description, in.Description)
		apply(&it.BinLocation, in.BinLocation)
		apply(&it.Brand, in.Brand)
		apply(&it.Size, in.Size)
		apply(&it.Color, in.Color)
		apply(&it.Category, in.Category)
		apply(&it.Condition, in.Condition)
		apply(&it.Notes, in.Notes)
		if in.Price != nil {
			it.Price = in.Price
		}
		it.UpdatedAt = f.clock
		return *it, nil
	}
	return inventory.Item{}, inventory.ErrNotFound
}

func (f *fakeStore) DeleteItem(ctx context.Context, id string) (bool, error) {
	for i, it := range f.items {
		if it.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) MarkItemSold(ctx context.Context, id string, in inventory.SellItemInput) (inventory.Item, error) {
	for i := range f.items {
		if f.items[i].ID != id {
			continue
		}
		if f.items[i].Status == inventory.StatusSold {
			return inventory.Item{}, inventory.ErrAlreadySold
		}
		f.items[i].Status = inventory.StatusSold
		f.items[i].SoldPrice = in.SoldPrice
		if in.SoldDate != nil {
			f.items[i].SoldDate = in.SoldDate
		} else {
			d := f.clock
			f.items[i].SoldDate = &d
		}
		f.items[i].UpdatedAt = f.clock
		return f.items[i], nil
	}
	return inventory.Item{}, inventory.ErrNotFound
}

func (f *fakeStore) SearchItems(ctx context.Context, query string) ([]inventory.Item, error) {
	if strings.TrimSpace(query) == "" {
		return f.ListItems(ctx)
	}
	q := strings.ToLower(query)
	var matched []inventory.Item
	for _, it := range f.items {
		hay := strings.ToLower(strings.Join([]string{
			it.Description, it.BinLocation, it.Brand, it.Size,
			it.Color, it.Category, it.Condition, it.Notes,
		}, "\x00"))
		if strings.Contains(hay, q) {
			matched = append(matched, it)
		}
	}
	return matched, nil
}

func (f *fakeStore) ItemsByBin(ctx context.Context, name string) ([]inventory.Item, error) {
	var matched []inventory.Item
	for _, it := range f.items {
		if strings.EqualFold(it.BinLocation, name) {
			matched = append(matched, it)
		}
	}
	return matched, nil
}

func (f *fakeStore) ListBins(ctx context.Context) ([]inventory.Bin, error) {
	return append([]inventory.Bin(nil), f.bins...), nil
}

func (f *fakeStore) GetBin(ctx context.Context, id string) (inventory.Bin, error) {
	for _, b := range f.bins {
		if b.ID == id {
			return b, nil
		}
	}
	return inventory.Bin{}, inventory.ErrNotFound
}

func (f *fakeStore) GetBinByName(ctx context.Context, name string) (inventory.Bin, error) {
	for _, b := range f.bins {
		if strings.EqualFold(b.Name, name) {
			return b, nil
		}
	}
	return inventory.Bin{}, inventory.ErrNotFound
}

func (f *fakeStore) CreateBin(ctx context.Context, in inventory.CreateBinInput) (inventory.Bin, error) {
	for _, b := range f.bins {
		if strings.EqualFold(b.Name, in.Name) {
			return inventory.Bin{}, inventory.ErrDuplicateBin
		}
	}
	color := in.Color
	if color == "" {
		color = inventory.DefaultBinColor
	}
	bin := inventory.Bin{
		ID:        f.newID(),
		Name:      in.Name,
		Color:     color,
		CreatedAt: f.clock,
		UpdatedAt: f.clock,
	}
	f.bins = append(f.bins, bin)
	return bin, nil
}

func (f *fakeStore) UpdateBin(ctx context.Context, id string, in inventory.UpdateBinInput) (inventory.Bin, error) {
	for i := range f.bins {
		if f.bins[i].ID != id {
			continue
		}
		if in.Name != nil {
			f.bins[i].Name = *in.Name
		}
		if in.Color != nil {
			f.bins[i].Color = *in.Color
		}
		f.bins[i].UpdatedAt = f.clock
		return f.bins[i], nil
	}
	return inventory.Bin{}, inventory.ErrNotFound
}

func (f *fakeStore) DeleteBin(ctx context.Context, id string) (bool, error) {
	for i, b := range f.bins {
		if b.ID == id {
			f.bins = append(f.bins[:i], f.bins[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) BinStats(ctx context.Context) ([]inventory.BinStat, error) {
	counts := make(map[string]*inventory.BinStat)
	var order []string
	for _, it := range f.items {
		key := strings.ToLower(it.BinLocation)
		stat, ok := counts[key]
		if !ok {
			stat = &inventory.BinStat{BinLocation: it.BinLocation}
			counts[key] = stat
			order = append(order, key)
		}
		stat.ItemCount++
		if stat.LastUpdated == nil || it.UpdatedAt.After(*stat.LastUpdated) {
			u := it.UpdatedAt
			stat.LastUpdated = &u
		}
	}
	stats := make([]inventory.BinStat, 0, len(order))
	for _, key := range order {
		stats = append(stats, *counts[key])
	}
	return stats, nil
}

var _ RecordStore = (*fakeStore)(nil)
