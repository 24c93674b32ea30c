package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexanderramin/parley/internal/domain"
)

// envelope is the body every endpoint answers with.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// statusFor maps domain errors onto HTTP statuses. ok is false for
// anything the handler should report as a 500.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, true
	default:
		return http.StatusInternalServerError, false
	}
}

// validationMessage returns the field message of a ValidationError, or fallback.
func validationMessage(err error, fallback string) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return fallback
}
