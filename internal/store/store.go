// Package store is the PostgreSQL-backed record store for items and bins.
// It owns the SQL and the row-to-model mapping; business rules live in core.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the database surface the store needs. *pgxpool.Pool satisfies
// it; tests substitute fakes.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store holds the database handle for all item and bin operations.
type Store struct {
	db Querier
}

// New creates a Store on top of a pgx pool (or a compatible fake).
func New(db Querier) *Store {
	return &Store{db: db}
}

// schema is applied idempotently at startup. The unique index on
// LOWER(bins.name) backs the case-insensitive name constraint.
const schema = `
CREATE TABLE IF NOT EXISTS items (
	id           uuid PRIMARY KEY,
	description  text NOT NULL,
	bin_location text NOT NULL,
	brand        text NOT NULL DEFAULT '',
	size         text NOT NULL DEFAULT '',
	color        text NOT NULL DEFAULT '',
	category     text NOT NULL DEFAULT '',
	condition    text NOT NULL DEFAULT '',
	notes        text NOT NULL DEFAULT '',
	price        numeric(10,2),
	status       text NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'sold')),
	sold_date    timestamptz,
	sold_price   numeric(10,2),
	created_at   timestamptz NOT NULL DEFAULT now(),
	updated_at   timestamptz NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS ix_items_bin_location_lower ON items (LOWER(bin_location));
CREATE INDEX IF NOT EXISTS ix_items_created_at ON items (created_at DESC);

CREATE TABLE IF NOT EXISTS bins (
	id         uuid PRIMARY KEY,
	name       text NOT NULL,
	color      text NOT NULL DEFAULT '#808080',
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS ux_bins_name_lower ON bins (LOWER(name));
`

// EnsureSchema creates the tables and indexes if they do not exist yet.
func EnsureSchema(ctx context.Context, db Querier) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
