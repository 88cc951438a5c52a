package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Result is a persisted calculation. UserID is nil for guest calculations
// not yet attributed to an account.
type Result struct {
	ID           int64           `json:"id"`
	UserID       *int64          `json:"userId"`
	CalculatorID int64           `json:"calculatorId"`
	InputJSON    json.RawMessage `json:"inputJson"`
	ResultValue  float64         `json:"resultValue"`
	UnitLabel    string          `json:"unitLabel"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// HistoryEntry is a result joined with its calculator's display name,
// as needed by the CSV export. ResultValue carries the NUMERIC column's
// decimal string.
type HistoryEntry struct {
	CreatedAt      time.Time
	CalculatorName string
	InputJSON      json.RawMessage
	ResultValue    string
	UnitLabel      string
}

// SaveResult persists a calculation for a user. The referenced user and
// calculator must exist; both are checked before the insert. The value is
// written as a 4-decimal string so NUMERIC(15,4) storage reproduces it
// exactly.
func (s *Store) SaveResult(ctx context.Context, userID, calculatorID int64, inputJSON json.RawMessage, resultValue float64, unitLabel string) (*Result, error) {
	if _, err := s.UserByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.CalculatorByID(ctx, calculatorID); err != nil {
		return nil, err
	}

	r := &Result{
		UserID:       &userID,
		CalculatorID: calculatorID,
		InputJSON:    inputJSON,
		UnitLabel:    unitLabel,
	}

	var stored string
	err := s.pool.QueryRow(ctx, `
		INSERT INTO results (user_id, calculator_id, input_json, result_value, unit_label)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, result_value::text, created_at
	`, userID, calculatorID, inputJSON, strconv.FormatFloat(resultValue, 'f', 4, 64), unitLabel).
		Scan(&r.ID, &stored, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("save result: %w", err)
	}

	r.ResultValue, err = strconv.ParseFloat(stored, 64)
	if err != nil {
		return nil, fmt.Errorf("parse stored result value %q: %w", stored, err)
	}
	return r, nil
}

// ResultsByUser returns all results owned by userID, newest first.
// Guest rows (NULL user_id) are never included.
func (s *Store) ResultsByUser(ctx context.Context, userID int64) ([]Result, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, calculator_id, input_json, result_value::text, unit_label, created_at
		FROM results
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("results by user: %w", err)
	}
	defer rows.Close()

	var list []Result
	for rows.Next() {
		var r Result
		var stored string
		if err := rows.Scan(&r.ID, &r.UserID, &r.CalculatorID, &r.InputJSON, &stored, &r.UnitLabel, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if r.ResultValue, err = strconv.ParseFloat(stored, 64); err != nil {
			return nil, fmt.Errorf("parse stored result value %q: %w", stored, err)
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

// DeleteResult deletes a result only when it belongs to userID, returning
// the number of rows removed. Ownership is enforced in the WHERE clause:
// rows owned by another user, or by nobody (NULL user_id), are untouched
// and report zero.
func (s *Store) DeleteResult(ctx context.Context, id, userID int64) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM results WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("delete result: %w", err)
	}
	return tag.RowsAffected(), nil
}

// HistoryByUser returns the user's results joined with calculator display
// names, newest first, for CSV export. The join is inner: results whose
// calculator was removed from the catalog do not appear.
func (s *Store) HistoryByUser(ctx context.Context, userID int64) ([]HistoryEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.created_at, c.name, r.input_json, r.result_value::text, r.unit_label
		FROM results r
		INNER JOIN calculators c ON c.id = r.calculator_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC, r.id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("history by user: %w", err)
	}
	defer rows.Close()

	var list []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.CreatedAt, &e.CalculatorName, &e.InputJSON, &e.ResultValue, &e.UnitLabel); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
