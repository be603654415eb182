package respond_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jordan/postboard/internal/api/respond"
	"github.com/jordan/postboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized access"},
		{domain.ErrSelfReview, http.StatusForbidden, "You cannot review your own post"},
		{domain.ErrDuplicateReview, http.StatusForbidden, "You have already reviewed this post"},
		{domain.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{domain.ErrNotFound, http.StatusNotFound, "Resource not found"},
		{domain.ErrEmailExists, http.StatusConflict, "Email already registered"},
		{domain.ErrQuotaExceeded, http.StatusTooManyRequests, "Too many requests"},
		{domain.ErrUploadFailed, http.StatusInternalServerError, "Image upload failed"},
		{assert.AnError, http.StatusInternalServerError, "Internal server error"},
		// Wrapped errors still classify.
		{fmt.Errorf("create review: %w", domain.ErrDuplicateReview), http.StatusForbidden, "You have already reviewed this post"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			respond.DomainError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMsg)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
