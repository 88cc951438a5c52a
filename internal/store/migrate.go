package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migration is one tracked schema change.
type migration struct {
	Name string
	SQL  string
}

// migrations lists all schema changes in execution order. Entries are
// append-only: never edit an executed migration, add a new one.
func migrations() []migration {
	return []migration{
		{
			Name: "001_create_users",
			SQL: `
			CREATE TABLE IF NOT EXISTS users (
				id SERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				email TEXT NOT NULL UNIQUE,
				password TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
			`,
		},
		{
			Name: "002_create_calculators",
			SQL: `
			CREATE TYPE calculator_category AS ENUM ('farming', 'livestock');
			CREATE TABLE IF NOT EXISTS calculators (
				id SERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				slug TEXT NOT NULL UNIQUE,
				description TEXT NOT NULL,
				category calculator_category NOT NULL,
				unit_label TEXT NOT NULL,
				formula_key TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
			`,
		},
		{
			Name: "003_create_results",
			SQL: `
			CREATE TABLE IF NOT EXISTS results (
				id SERIAL PRIMARY KEY,
				user_id INTEGER,
				calculator_id INTEGER NOT NULL REFERENCES calculators(id),
				input_json JSONB NOT NULL,
				result_value NUMERIC(15,4) NOT NULL,
				unit_label TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);
			CREATE INDEX IF NOT EXISTS idx_results_user_created
				ON results (user_id, created_at DESC)
			`,
		},
	}
}

// Migrate brings the schema up to date. Each migration runs at most once,
// tracked in a migrations table.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			executed_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	for _, m := range migrations() {
		if err := runIfNotExecuted(ctx, pool, m); err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
	}
	return nil
}

func runIfNotExecuted(ctx context.Context, pool *pgxpool.Pool, m migration) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM migrations WHERE name = $1", m.Name).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	slog.Info("running migration", "name", m.Name)
	if _, err := pool.Exec(ctx, m.SQL); err != nil {
		return err
	}
	_, err := pool.Exec(ctx, "INSERT INTO migrations (name) VALUES ($1)", m.Name)
	return err
}
