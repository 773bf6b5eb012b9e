package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/binkeeper/binkeeper/internal/inventory"
)

// itemColumns is the canonical select list. Prices come back as text to
// avoid float round-tripping (numeric(10,2) in the table).
const itemColumns = `id, description, bin_location, brand, size, color, category, condition, notes,
	price::text, status, sold_date, sold_price::text, created_at, updated_at`

func scanItem(row pgx.Row) (inventory.Item, error) {
	var it inventory.Item
	err := row.Scan(
		&it.ID, &it.Description, &it.BinLocation, &it.Brand, &it.Size, &it.Color,
		&it.Category, &it.Condition, &it.Notes, &it.Price, &it.Status,
		&it.SoldDate, &it.SoldPrice, &it.CreatedAt, &it.UpdatedAt,
	)
	return it, err
}

func scanItems(rows pgx.Rows) ([]inventory.Item, error) {
	defer rows.Close()
	var items []inventory.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListItems returns every item, newest first.
func (s *Store) ListItems(ctx context.Context) ([]inventory.Item, error) {
	rows, err := s.db.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return scanItems(rows)
}

// GetItem returns one item by id.
func (s *Store) GetItem(ctx context.Context, id string) (inventory.Item, error) {
	it, err := scanItem(s.db.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return inventory.Item{}, inventory.ErrNotFound
	}
	if err != nil {
		return inventory.Item{}, fmt.Errorf("getting item: %w", err)
	}
	return it, nil
}

const insertItemSQL = `
	INSERT INTO items (id, description, bin_location, brand, size, color, category, condition, notes, price)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::numeric)
	RETURNING ` + itemColumns

// CreateItem inserts one item with a fresh id, active status and
// server-assigned timestamps.
func (s *Store) CreateItem(ctx context.Context, in inventory.CreateItemInput) (inventory.Item, error) {
	it, err := scanItem(s.db.QueryRow(ctx, insertItemSQL,
		uuid.NewString(), in.Description, in.BinLocation, in.Brand, in.Size,
		in.Color, in.Category, in.Condition, in.Notes, in.Price,
	))
	if err != nil {
		return inventory.Item{}, fmt.Errorf("creating item: %w", err)
	}
	return it, nil
}

// CreateItems bulk-inserts the given inputs inside a single transaction:
// either every item is created or none is.
func (s *Store) CreateItems(ctx context.Context, inputs []inventory.CreateItemInput) ([]inventory.Item, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning bulk insert: %w", err)
	}
	defer tx.Rollback(ctx)

	created := make([]inventory.Item, 0, len(inputs))
	for _, in := range inputs {
		it, err := scanItem(tx.QueryRow(ctx, insertItemSQL,
			uuid.NewString(), in.Description, in.BinLocation, in.Brand, in.Size,
			in.Color, in.Category, in.Condition, in.Notes, in.Price,
		))
		if err != nil {
			return nil, fmt.Errorf("bulk inserting item: %w", err)
		}
		created = append(created, it)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing bulk insert: %w", err)
	}
	return created, nil
}

// UpdateItem applies a partial-field update and returns the fresh record.
func (s *Store) UpdateItem(ctx context.Context, id string, in inventory.UpdateItemInput) (inventory.Item, error) {
	var set []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if in.Description != nil {
		add("description", *in.Description)
	}
	if in.BinLocation != nil {
		add("bin_location", *in.BinLocation)
	}
	if in.Brand != nil {
		add("brand", *in.Brand)
	}
	if in.Size != nil {
		add("size", *in.Size)
	}
	if in.Color != nil {
		add("color", *in.Color)
	}
	if in.Category != nil {
		add("category", *in.Category)
	}
	if in.Condition != nil {
		add("condition", *in.Condition)
	}
	if in.Notes != nil {
		add("notes", *in.Notes)
	}
	if in.Price != nil {
		args = append(args, *in.Price)
		set = append(set, fmt.Sprintf("price = $%d::numeric", len(args)))
	}
	set = append(set, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE items SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), itemColumns)

	it, err := scanItem(s.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return inventory.Item{}, inventory.ErrNotFound
	}
	if err != nil {
		return inventory.Item{}, fmt.Errorf("updating item: %w", err)
	}
	return it, nil
}

// DeleteItem removes an item and reports whether a record existed.
func (s *Store) DeleteItem(ctx context.Context, id string) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MarkItemSold transitions an active item to sold. SoldDate defaults to the
// database clock. Selling an already-sold item returns inventory.ErrAlreadySold.
func (s *Store) MarkItemSold(ctx context.Context, id string, in inventory.SellItemInput) (inventory.Item, error) {
	it, err := scanItem(s.db.QueryRow(ctx, `
		UPDATE items
		SET status = 'sold', sold_date = COALESCE($2, now()), sold_price = $3::numeric, updated_at = now()
		WHERE id = $1 AND status = 'active'
		RETURNING `+itemColumns,
		id, in.SoldDate, in.SoldPrice,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the item does not exist or it is already sold.
		var status string
		probe := s.db.QueryRow(ctx, `SELECT status FROM items WHERE id = $1`, id)
		if probeErr := probe.Scan(&status); probeErr != nil {
			if errors.Is(probeErr, pgx.ErrNoRows) {
				return inventory.Item{}, inventory.ErrNotFound
			}
			return inventory.Item{}, fmt.Errorf("checking item status: %w", probeErr)
		}
		if status == inventory.StatusSold {
			return inventory.Item{}, inventory.ErrAlreadySold
		}
		return inventory.Item{}, inventory.ErrNotFound
	}
	if err != nil {
		return inventory.Item{}, fmt.Errorf("marking item sold: %w", err)
	}
	return it, nil
}

// SearchItems returns items whose text fields contain query,
// case-insensitively. An empty query returns everything.
func (s *Store) SearchItems(ctx context.Context, query string) ([]inventory.Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListItems(ctx)
	}

	pattern := "%" + query + "%"
	rows, err := s.db.Query(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE description ILIKE $1 OR brand ILIKE $1 OR size ILIKE $1
		   OR color ILIKE $1 OR category ILIKE $1 OR condition ILIKE $1
		   OR notes ILIKE $1 OR bin_location ILIKE $1
		ORDER BY created_at DESC`,
		pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}
	return scanItems(rows)
}

// ItemsByBin returns items whose bin location matches name
// case-insensitively, newest first.
func (s *Store) ItemsByBin(ctx context.Context, name string) ([]inventory.Item, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE LOWER(bin_location) = LOWER($1)
		ORDER BY created_at DESC`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items by bin: %w", err)
	}
	return scanItems(rows)
}
