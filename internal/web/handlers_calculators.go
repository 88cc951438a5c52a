package web

import (
	"encoding/json"
	"net/http"

	"tanihitung/internal/apperr"
	"tanihitung/internal/store"

	"github.com/go-chi/chi/v5"
)

type createCalculatorRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Category    string `json:"category"`
	UnitLabel   string `json:"unitLabel"`
	FormulaKey  string `json:"formulaKey"`
}

// decodeJSON decodes the request body into v, classifying failures as
// bad requests.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Wrap(apperr.KindBadRequest, "invalid request body", err)
	}
	return nil
}

// handleListCalculators returns the catalog, optionally filtered by
// category.
func (s *Server) handleListCalculators(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && !store.ValidCategory(category) {
		s.respondError(w, r, apperr.Newf(apperr.KindBadRequest, "invalid category: %s", category))
		return
	}

	list, err := s.calculators.ListCalculators(r.Context(), category)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if list == nil {
		list = []store.Calculator{}
	}
	writeJSON(w, http.StatusOK, list)
}

// handleCalculatorBySlug returns one catalog entry.
func (s *Server) handleCalculatorBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	calculator, err := s.calculators.CalculatorBySlug(r.Context(), slug)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, calculator)
}

// handleCreateCalculator inserts a catalog entry.
func (s *Server) handleCreateCalculator(w http.ResponseWriter, r *http.Request) {
	var req createCalculatorRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	required := []struct {
		value, name string
	}{
		{req.Name, "name"},
		{req.Slug, "slug"},
		{req.Description, "description"},
		{req.UnitLabel, "unit label"},
		{req.FormulaKey, "formula key"},
	}
	for _, f := range required {
		if f.value == "" {
			s.respondError(w, r, apperr.Newf(apperr.KindBadRequest, "%s is required", f.name))
			return
		}
	}
	if !store.ValidCategory(req.Category) {
		s.respondError(w, r, apperr.Newf(apperr.KindBadRequest, "invalid category: %s", req.Category))
		return
	}

	calculator, err := s.calculators.CreateCalculator(r.Context(), store.Calculator{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Category:    req.Category,
		UnitLabel:   req.UnitLabel,
		FormulaKey:  req.FormulaKey,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, calculator)
}
