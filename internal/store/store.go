// Package store persists users, calculators, and calculation results in
// PostgreSQL via pgx. It owns the schema (tracked migrations) and maps
// database failures onto the application error taxonomy: unique
// violations become conflicts, missing rows become not-found.
//
// Result values are stored in a NUMERIC(15,4) column. The store writes
// them as 4-decimal strings and reads them back as text, so a saved value
// round-trips exactly at that precision and the export layer controls all
// display formatting.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

// Store provides access to the application's persistent data.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by the given connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// isNoRows reports whether err means no row matched.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
