package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"tanihitung/internal/apperr"
	"tanihitung/internal/logging"
)

// errorResponse is the JSON structure for API error responses. Message
// text is preserved verbatim so clients can diagnose validation failures.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// statusForKind maps the application error taxonomy onto HTTP statuses.
func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindBadRequest:
		return http.StatusBadRequest
	case apperr.KindValidation:
		return http.StatusUnprocessableEntity
	case apperr.KindUnknownFormula, apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError classifies err, logs it with request context, and writes
// the JSON error response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := statusForKind(kind)

	message := err.Error()
	if status == http.StatusInternalServerError {
		// Unclassified failures stay server-side; the log has the detail.
		message = "internal server error"
	}

	logger := logging.FromContext(r.Context())
	logger.Error("request error",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"code", kind.String(),
		"error", err.Error(),
	)

	writeJSON(w, status, errorResponse{
		Error: message,
		Code:  kind.String(),
		Field: apperr.FieldOf(err),
	})
}

// writeJSON encodes v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
