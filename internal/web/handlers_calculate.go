package web

import (
	"encoding/json"
	"net/http"
	"time"

	"tanihitung/internal/apperr"
	"tanihitung/internal/calc"
	"tanihitung/internal/metrics"
)

type calculateRequest struct {
	Slug  string          `json:"slug"`
	Input json.RawMessage `json:"input"`
}

// handleCalculate runs a calculation without persisting anything.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req calculateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	input, err := decodeInput(req.Input)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	out, err := calc.Calculate(req.Slug, input)

	// Unregistered slugs share one metric label to bound cardinality.
	slugLabel := req.Slug
	if _, ok := calc.Lookup(req.Slug); !ok {
		slugLabel = "unknown"
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.CalculationsTotal.WithLabelValues(slugLabel, status).Inc()
	metrics.CalculationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// decodeInput parses the raw input document into a calculation input map.
// Absent and null both decode to nil (the dispatcher rejects that);
// non-object documents are rejected here with the dispatcher's message.
func decodeInput(raw json.RawMessage) (calc.Input, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var input calc.Input
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, apperr.New(apperr.KindBadRequest, "valid input data is required")
	}
	return input, nil
}
