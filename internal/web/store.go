package web

import (
	"context"
	"encoding/json"

	"tanihitung/internal/store"
)

// The handler layer depends on narrow store interfaces so tests can run
// against in-memory fakes. *store.Store satisfies all of them.

// UserStore provides user account persistence.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*store.User, error)
	UserByEmail(ctx context.Context, email string) (*store.User, error)
}

// CalculatorStore provides catalog persistence.
type CalculatorStore interface {
	CreateCalculator(ctx context.Context, c store.Calculator) (*store.Calculator, error)
	CalculatorBySlug(ctx context.Context, slug string) (*store.Calculator, error)
	CalculatorByID(ctx context.Context, id int64) (*store.Calculator, error)
	ListCalculators(ctx context.Context, category string) ([]store.Calculator, error)
}

// ResultStore provides calculation history persistence.
type ResultStore interface {
	SaveResult(ctx context.Context, userID, calculatorID int64, inputJSON json.RawMessage, resultValue float64, unitLabel string) (*store.Result, error)
	ResultsByUser(ctx context.Context, userID int64) ([]store.Result, error)
	DeleteResult(ctx context.Context, id, userID int64) (int64, error)
	HistoryByUser(ctx context.Context, userID int64) ([]store.HistoryEntry, error)
}

// Stores bundles the persistence dependencies of the server.
type Stores struct {
	Users       UserStore
	Calculators CalculatorStore
	Results     ResultStore
}
