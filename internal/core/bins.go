package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/binkeeper/binkeeper/internal/inventory"
)

// ErrBinsAlreadySeeded rejects a seed request when any bin already exists.
var ErrBinsAlreadySeeded = errors.New("bins already exist; seeding is only allowed on an empty bin set")

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// CreateBin inserts a bin after validating the name and color. Duplicate
// names are rejected case-insensitively.
func (s *Service) CreateBin(ctx context.Context, in inventory.CreateBinInput) (inventory.Bin, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Color = strings.TrimSpace(in.Color)

	if in.Name == "" {
		return inventory.Bin{}, fmt.Errorf("%w: bin name is required", ErrInvalidInput)
	}
	if in.Color != "" && !hexColor.MatchString(in.Color) {
		return inventory.Bin{}, fmt.Errorf("%w: color must be a #rrggbb hex string", ErrInvalidInput)
	}

	if _, err := s.store.GetBinByName(ctx, in.Name); err == nil {
		return inventory.Bin{}, inventory.ErrDuplicateBin
	} else if !errors.Is(err, inventory.ErrNotFound) {
		return inventory.Bin{}, err
	}

	return s.store.CreateBin(ctx, in)
}

// UpdateBin applies a partial bin update. A rename is refused while any item
// still references the bin's current name, regardless of whether the new
// name is otherwise free, and refused when another bin owns the new name.
func (s *Service) UpdateBin(ctx context.Context, id string, in inventory.UpdateBinInput) (inventory.Bin, error) {
	if in.Name == nil && in.Color == nil {
		return inventory.Bin{}, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	current, err := s.store.GetBin(ctx, id)
	if err != nil {
		return inventory.Bin{}, err
	}

	if in.Color != nil {
		color := strings.TrimSpace(*in.Color)
		if !hexColor.MatchString(color) {
			return inventory.Bin{}, fmt.Errorf("%w: color must be a #rrggbb hex string", ErrInvalidInput)
		}
		in.Color = &color
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return inventory.Bin{}, fmt.Errorf("%w: bin name cannot be empty", ErrInvalidInput)
		}
		in.Name = &name

		if !strings.EqualFold(name, current.Name) {
			// Items reference bins by name, so a rename would orphan every
			// referencing record. The caller must move or delete them first.
			refs, err := s.store.ItemsByBin(ctx, current.Name)
			if err != nil {
				return inventory.Bin{}, err
			}
			if len(refs) > 0 {
				return inventory.Bin{}, &BinInUseError{Name: current.Name, Count: len(refs)}
			}

			other, err := s.store.GetBinByName(ctx, name)
			if err == nil && other.ID != id {
				return inventory.Bin{}, inventory.ErrDuplicateBin
			}
			if err != nil && !errors.Is(err, inventory.ErrNotFound) {
				return inventory.Bin{}, err
			}
		}
	}

	return s.store.UpdateBin(ctx, id, in)
}

// DeleteBin removes a bin, refusing while any item still references its
// name. A bin with zero referencing items may always be deleted.
func (s *Service) DeleteBin(ctx context.Context, id string) error {
	bin, err := s.store.GetBin(ctx, id)
	if err != nil {
		return err
	}

	refs, err := s.store.ItemsByBin(ctx, bin.Name)
	if err != nil {
		return err
	}
	if len(refs) > 0 {
		return &BinInUseError{Name: bin.Name, Count: len(refs)}
	}

	ok, err := s.store.DeleteBin(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return inventory.ErrNotFound
	}
	return nil
}

// SeedBins creates the default bin set Bin-0 through Bin-30, each with its
// palette color (Bin-0 is always gray). Refused if any bin already exists.
func (s *Service) SeedBins(ctx context.Context) ([]inventory.Bin, error) {
	existing, err := s.store.ListBins(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrBinsAlreadySeeded
	}

	bins := make([]inventory.Bin, 0, len(inventory.DefaultBinPalette))
	for i, color := range inventory.DefaultBinPalette {
		bin, err := s.store.CreateBin(ctx, inventory.CreateBinInput{
			Name:  fmt.Sprintf("Bin-%d", i),
			Color: color,
		})
		if err != nil {
			return nil, fmt.Errorf("seeding Bin-%d: %w", i, err)
		}
		bins = append(bins, bin)
	}

	slog.Info("seeded default bins", "count", len(bins))
	return bins, nil
}
