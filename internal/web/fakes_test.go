package web

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"tanihitung/internal/apperr"
	"tanihitung/internal/store"
)

// In-memory stand-ins for the store interfaces. They mirror the real
// store's error classification and ordering so handler tests exercise
// the same contracts without a database.

type fakeUsers struct {
	nextID  int64
	byEmail map[string]*store.User
	byID    map[int64]*store.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*store.User{}, byID: map[int64]*store.User{}}
}

func (f *fakeUsers) CreateUser(_ context.Context, name, email, passwordHash string) (*store.User, error) {
	if _, exists := f.byEmail[email]; exists {
		return nil, apperr.Newf(apperr.KindConflict, "email %s is already registered", email)
	}
	f.nextID++
	u := &store.User{
		ID:        f.nextID,
		Name:      name,
		Email:     email,
		Password:  passwordHash,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.byEmail[email] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) UserByEmail(_ context.Context, email string) (*store.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, apperr.Newf(apperr.KindNotFound, "user with email %s not found", email)
	}
	return u, nil
}

type fakeCalculators struct {
	nextID int64
	bySlug map[string]*store.Calculator
	byID   map[int64]*store.Calculator
}

func newFakeCalculators() *fakeCalculators {
	return &fakeCalculators{bySlug: map[string]*store.Calculator{}, byID: map[int64]*store.Calculator{}}
}

func (f *fakeCalculators) CreateCalculator(_ context.Context, c store.Calculator) (*store.Calculator, error) {
	if _, exists := f.bySlug[c.Slug]; exists {
		return nil, apperr.Newf(apperr.KindConflict, "calculator slug %s already exists", c.Slug)
	}
	f.nextID++
	c.ID = f.nextID
	c.CreatedAt = time.Now()
	f.bySlug[c.Slug] = &c
	f.byID[c.ID] = &c
	return &c, nil
}

func (f *fakeCalculators) CalculatorBySlug(_ context.Context, slug string) (*store.Calculator, error) {
	c, ok := f.bySlug[slug]
	if !ok {
		return nil, apperr.Newf(apperr.KindNotFound, "calculator with slug %s not found", slug)
	}
	return c, nil
}

func (f *fakeCalculators) CalculatorByID(_ context.Context, id int64) (*store.Calculator, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, apperr.Newf(apperr.KindNotFound, "calculator with id %d not found", id)
	}
	return c, nil
}

func (f *fakeCalculators) ListCalculators(_ context.Context, category string) ([]store.Calculator, error) {
	var list []store.Calculator
	for _, c := range f.byID {
		if category == "" || c.Category == category {
			list = append(list, *c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

type fakeResults struct {
	nextID      int64
	rows        []store.Result
	calculators *fakeCalculators
}

func newFakeResults(calculators *fakeCalculators) *fakeResults {
	return &fakeResults{calculators: calculators}
}

// seed inserts a row directly, bypassing the handler path. A nil owner
// creates a guest row.
func (f *fakeResults) seed(owner *int64, calculatorID int64, inputJSON string, value float64, unit string, createdAt time.Time) store.Result {
	f.nextID++
	r := store.Result{
		ID:           f.nextID,
		UserID:       owner,
		CalculatorID: calculatorID,
		InputJSON:    json.RawMessage(inputJSON),
		ResultValue:  value,
		UnitLabel:    unit,
		CreatedAt:    createdAt,
	}
	f.rows = append(f.rows, r)
	return r
}

func (f *fakeResults) SaveResult(_ context.Context, userID, calculatorID int64, inputJSON json.RawMessage, resultValue float64, unitLabel string) (*store.Result, error) {
	if _, ok := f.calculators.byID[calculatorID]; !ok {
		return nil, apperr.Newf(apperr.KindNotFound, "calculator with id %d not found", calculatorID)
	}
	f.nextID++
	r := store.Result{
		ID:           f.nextID,
		UserID:       &userID,
		CalculatorID: calculatorID,
		InputJSON:    inputJSON,
		ResultValue:  resultValue,
		UnitLabel:    unitLabel,
		CreatedAt:    time.Now(),
	}
	f.rows = append(f.rows, r)
	return &r, nil
}

func (f *fakeResults) owned(userID int64) []store.Result {
	var list []store.Result
	for _, r := range f.rows {
		if r.UserID != nil && *r.UserID == userID {
			list = append(list, r)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list
}

func (f *fakeResults) ResultsByUser(_ context.Context, userID int64) ([]store.Result, error) {
	return f.owned(userID), nil
}

func (f *fakeResults) DeleteResult(_ context.Context, id, userID int64) (int64, error) {
	for i, r := range f.rows {
		if r.ID == id && r.UserID != nil && *r.UserID == userID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeResults) HistoryByUser(_ context.Context, userID int64) ([]store.HistoryEntry, error) {
	var list []store.HistoryEntry
	for _, r := range f.owned(userID) {
		c, ok := f.calculators.byID[r.CalculatorID]
		if !ok {
			continue // inner join: orphaned results drop out
		}
		list = append(list, store.HistoryEntry{
			CreatedAt:      r.CreatedAt,
			CalculatorName: c.Name,
			InputJSON:      r.InputJSON,
			ResultValue:    formatStored(r.ResultValue),
			UnitLabel:      r.UnitLabel,
		})
	}
	return list, nil
}

// formatStored mimics the NUMERIC(15,4) column's text form.
func formatStored(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
