package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/binkeeper/binkeeper/internal/inventory"
)

const binColumns = `id, name, color, created_at, updated_at`

func scanBin(row pgx.Row) (inventory.Bin, error) {
	var b inventory.Bin
	err := row.Scan(&b.ID, &b.Name, &b.Color, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// ListBins returns all bins, numerically sorted by the trailing integer in
// the bin name when present (Bin-2 before Bin-10), else lexicographically.
func (s *Store) ListBins(ctx context.Context) ([]inventory.Bin, error) {
	rows, err := s.db.Query(ctx, `SELECT `+binColumns+` FROM bins`)
	if err != nil {
		return nil, fmt.Errorf("listing bins: %w", err)
	}
	defer rows.Close()

	var bins []inventory.Bin
	for rows.Next() {
		b, err := scanBin(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bin: %w", err)
		}
		bins = append(bins, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(bins, func(i, j int) bool {
		return binNameLess(bins[i].Name, bins[j].Name)
	})
	return bins, nil
}

// GetBin returns one bin by id.
func (s *Store) GetBin(ctx context.Context, id string) (inventory.Bin, error) {
	b, err := scanBin(s.db.QueryRow(ctx, `SELECT `+binColumns+` FROM bins WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return inventory.Bin{}, inventory.ErrNotFound
	}
	if err != nil {
		return inventory.Bin{}, fmt.Errorf("getting bin: %w", err)
	}
	return b, nil
}

// GetBinByName returns the bin matching name case-insensitively.
func (s *Store) GetBinByName(ctx context.Context, name string) (inventory.Bin, error) {
	b, err := scanBin(s.db.QueryRow(ctx,
		`SELECT `+binColumns+` FROM bins WHERE LOWER(name) = LOWER($1)`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return inventory.Bin{}, inventory.ErrNotFound
	}
	if err != nil {
		return inventory.Bin{}, fmt.Errorf("getting bin by name: %w", err)
	}
	return b, nil
}

// CreateBin inserts one bin. A case-insensitive name collision returns
// inventory.ErrDuplicateBin (backed by the unique index on LOWER(name)).
func (s *Store) CreateBin(ctx context.Context, in inventory.CreateBinInput) (inventory.Bin, error) {
	color := in.Color
	if color == "" {
		color = inventory.DefaultBinColor
	}

	b, err := scanBin(s.db.QueryRow(ctx, `
		INSERT INTO bins (id, name, color) VALUES ($1, $2, $3)
		RETURNING `+binColumns,
		uuid.NewString(), in.Name, color,
	))
	if isUniqueViolation(err) {
		return inventory.Bin{}, inventory.ErrDuplicateBin
	}
	if err != nil {
		return inventory.Bin{}, fmt.Errorf("creating bin: %w", err)
	}
	return b, nil
}

// UpdateBin applies a partial-field bin update and returns the fresh record.
// Name-collision and referential checks belong to core; this only persists.
func (s *Store) UpdateBin(ctx context.Context, id string, in inventory.UpdateBinInput) (inventory.Bin, error) {
	var set []string
	var args []any
	if in.Name != nil {
		args = append(args, *in.Name)
		set = append(set, fmt.Sprintf("name = $%d", len(args)))
	}
	if in.Color != nil {
		args = append(args, *in.Color)
		set = append(set, fmt.Sprintf("color = $%d", len(args)))
	}
	set = append(set, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE bins SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), binColumns)

	b, err := scanBin(s.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return inventory.Bin{}, inventory.ErrNotFound
	}
	if isUniqueViolation(err) {
		return inventory.Bin{}, inventory.ErrDuplicateBin
	}
	if err != nil {
		return inventory.Bin{}, fmt.Errorf("updating bin: %w", err)
	}
	return b, nil
}

// DeleteBin removes a bin and reports whether a record existed.
func (s *Store) DeleteBin(ctx context.Context, id string) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM bins WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting bin: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// BinStats groups items by bin location: item count and the most recent
// update per bin name.
func (s *Store) BinStats(ctx context.Context) ([]inventory.BinStat, error) {
	rows, err := s.db.Query(ctx, `
		SELECT bin_location, COUNT(*), MAX(updated_at)
		FROM items
		GROUP BY bin_location`,
	)
	if err != nil {
		return nil, fmt.Errorf("computing bin stats: %w", err)
	}
	defer rows.Close()

	var stats []inventory.BinStat
	for rows.Next() {
		var st inventory.BinStat
		if err := rows.Scan(&st.BinLocation, &st.ItemCount, &st.LastUpdated); err != nil {
			return nil, fmt.Errorf("scanning bin stat: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return binNameLess(stats[i].BinLocation, stats[j].BinLocation)
	})
	return stats, nil
}

var trailingInt = regexp.MustCompile(`(\d+)\s*$`)

// binNameLess orders bin names by prefix, then by trailing integer when both
// names carry one, so Bin-2 sorts before Bin-10.
func binNameLess(a, b string) bool {
	an, aok := splitTrailingInt(a)
	bn, bok := splitTrailingInt(b)
	if aok && bok && strings.EqualFold(an.prefix, bn.prefix) {
		if an.n != bn.n {
			return an.n < bn.n
		}
	}
	return strings.ToLower(a) < strings.ToLower(b)
}

type numberedName struct {
	prefix string
	n      int
}

func splitTrailingInt(name string) (numberedName, bool) {
	m := trailingInt.FindStringSubmatchIndex(name)
	if m == nil {
		return numberedName{}, false
	}
	n, err := strconv.Atoi(name[m[2]:m[3]])
	if err != nil {
		return numberedName{}, false
	}
	return numberedName{prefix: name[:m[2]], n: n}, true
}
