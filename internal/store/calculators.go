package store

import (
	"context"
	"fmt"
	"time"

	"tanihitung/internal/apperr"
)

// Calculator categories.
const (
	CategoryFarming   = "farming"
	CategoryLivestock = "livestock"
)

// ValidCategory reports whether c is a known calculator category.
func ValidCategory(c string) bool {
	return c == CategoryFarming || c == CategoryLivestock
}

// Calculator is a catalog entry: display metadata plus the formula key
// that selects the calculation logic.
type Calculator struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	UnitLabel   string    `json:"unitLabel"`
	FormulaKey  string    `json:"formulaKey"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateCalculator inserts a catalog entry.
// Returns a conflict error when the slug is taken.
func (s *Store) CreateCalculator(ctx context.Context, c Calculator) (*Calculator, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO calculators (name, slug, description, category, unit_label, formula_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, c.Name, c.Slug, c.Description, c.Category, c.UnitLabel, c.FormulaKey).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.KindConflict, fmt.Sprintf("calculator slug %s already exists", c.Slug), err)
		}
		return nil, fmt.Errorf("create calculator: %w", err)
	}
	return &c, nil
}

// CalculatorBySlug returns the catalog entry with the given slug.
func (s *Store) CalculatorBySlug(ctx context.Context, slug string) (*Calculator, error) {
	c := &Calculator{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, slug, description, category, unit_label, formula_key, created_at
		FROM calculators WHERE slug = $1
	`, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Category, &c.UnitLabel, &c.FormulaKey, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.Newf(apperr.KindNotFound, "calculator with slug %s not found", slug)
		}
		return nil, fmt.Errorf("calculator by slug: %w", err)
	}
	return c, nil
}

// CalculatorByID returns the catalog entry with the given id.
func (s *Store) CalculatorByID(ctx context.Context, id int64) (*Calculator, error) {
	c := &Calculator{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, slug, description, category, unit_label, formula_key, created_at
		FROM calculators WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Category, &c.UnitLabel, &c.FormulaKey, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.Newf(apperr.KindNotFound, "calculator with id %d not found", id)
		}
		return nil, fmt.Errorf("calculator by id: %w", err)
	}
	return c, nil
}

// ListCalculators returns catalog entries, optionally filtered by
// category, ordered by name.
func (s *Store) ListCalculators(ctx context.Context, category string) ([]Calculator, error) {
	query := `
		SELECT id, name, slug, description, category, unit_label, formula_key, created_at
		FROM calculators
	`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY name`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list calculators: %w", err)
	}
	defer rows.Close()

	var list []Calculator
	for rows.Next() {
		var c Calculator
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Category, &c.UnitLabel, &c.FormulaKey, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan calculator: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
