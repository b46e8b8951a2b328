package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corray333/backend-labs/shop/internal/service/errs"
	"github.com/go-chi/chi/v5"
)

// Status is the body of every non-resource response.
type Status struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "Error writing response", "path", r.URL.Path, "error", err)
	}
}

// Error maps err to a status code and writes it as a Status body.
// Internal errors are logged and hidden from the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	code := StatusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		message = http.StatusText(code)
	}

	JSON(w, r, code, Status{Success: false, Message: message})
}

// StatusCode returns the HTTP status for a service error.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IDParam parses a positive integer URL parameter.
func IDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Validation("invalid %s %q", name, raw)
	}

	return id, nil
}
