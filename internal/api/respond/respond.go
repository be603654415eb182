// Package respond is the single boundary responder: guards and handlers
// classify failures as domain errors and this package maps them to status
// codes and short human-readable messages. No stack traces or internal
// identifiers reach the client.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jordan/postboard/internal/domain"
)

type errorBody struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Message: message})
}

// DomainError maps a classified error to its response. Unknown errors are
// deliberately flattened to a generic 500.
func DomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, domain.ErrUnauthorized):
		Error(w, http.StatusUnauthorized, "Unauthorized access")
	case errors.Is(err, domain.ErrSelfReview):
		Error(w, http.StatusForbidden, "You cannot review your own post")
	case errors.Is(err, domain.ErrDuplicateReview):
		Error(w, http.StatusForbidden, "You have already reviewed this post")
	case errors.Is(err, domain.ErrForbidden):
		Error(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, domain.ErrNotFound):
		Error(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, domain.ErrEmailExists):
		Error(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, domain.ErrQuotaExceeded):
		Error(w, http.StatusTooManyRequests, "Too many requests")
	case errors.Is(err, domain.ErrUploadFailed):
		Error(w, http.StatusInternalServerError, "Image upload failed")
	default:
		Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
