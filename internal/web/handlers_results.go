package web

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"tanihitung/internal/apperr"
	"tanihitung/internal/calc"
	"tanihitung/internal/export"
	"tanihitung/internal/metrics"
	"tanihitung/internal/store"

	"github.com/go-chi/chi/v5"
)

type saveResultRequest struct {
	CalculatorID int64           `json:"calculatorId"`
	InputJSON    json.RawMessage `json:"inputJson"`
	ResultValue  float64         `json:"resultValue"`
	UnitLabel    string          `json:"unitLabel"`
}

// resultTolerance is half a unit of the NUMERIC(15,4) storage scale: a
// submitted value must match the recomputed one at storage precision.
const resultTolerance = 0.00005

// handleSaveResult persists a calculation for the authenticated user.
//
// The stored value must reproduce what the dispatcher computes from the
// stored input, so the formula is re-run here and the submitted value is
// checked against it before anything is written.
func (s *Server) handleSaveResult(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		s.respondError(w, r, apperr.New(apperr.KindUnauthorized, "authentication required"))
		return
	}

	var req saveResultRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	calculator, err := s.calculators.CalculatorByID(r.Context(), req.CalculatorID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	input, err := decodeInput(req.InputJSON)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	out, err := calc.Calculate(calculator.FormulaKey, input)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if math.Abs(out.ResultValue-req.ResultValue) >= resultTolerance {
		s.respondError(w, r, apperr.Newf(apperr.KindBadRequest,
			"result value %v does not match the calculator's formula", req.ResultValue))
		return
	}

	result, err := s.results.SaveResult(r.Context(), userID, req.CalculatorID, req.InputJSON, out.ResultValue, out.UnitLabel)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	metrics.ResultsSaved.Inc()
	writeJSON(w, http.StatusCreated, result)
}

// handleHistory returns the authenticated user's results, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		s.respondError(w, r, apperr.New(apperr.KindUnauthorized, "authentication required"))
		return
	}

	results, err := s.results.ResultsByUser(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if results == nil {
		results = []store.Result{}
	}
	writeJSON(w, http.StatusOK, results)
}

// handleDeleteResult removes one of the authenticated user's results.
// Ownership is enforced by the store's delete query; a miss (wrong owner
// or no such row) reports not found.
func (s *Server) handleDeleteResult(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		s.respondError(w, r, apperr.New(apperr.KindUnauthorized, "authentication required"))
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.respondError(w, r, apperr.New(apperr.KindBadRequest, "invalid result id"))
		return
	}

	deleted, err := s.results.DeleteResult(r.Context(), id, userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if deleted == 0 {
		s.respondError(w, r, apperr.Newf(apperr.KindNotFound, "result with id %d not found", id))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleExportHistory streams the authenticated user's history as CSV.
func (s *Server) handleExportHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		s.respondError(w, r, apperr.New(apperr.KindUnauthorized, "authentication required"))
		return
	}

	entries, err := s.results.HistoryByUser(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	records := make([]export.Record, len(entries))
	for i, e := range entries {
		records[i] = export.Record{
			CreatedAt:      e.CreatedAt,
			CalculatorName: e.CalculatorName,
			InputJSON:      e.InputJSON,
			ResultValue:    e.ResultValue,
			UnitLabel:      e.UnitLabel,
		}
	}

	filename := fmt.Sprintf("history_%s.csv", time.Now().UTC().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(export.Format(records))); err != nil {
		return
	}

	metrics.ExportsTotal.Inc()
}
