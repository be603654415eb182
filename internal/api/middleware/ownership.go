package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jordan/postboard/internal/api/respond"
	"github.com/jordan/postboard/internal/domain"
	"github.com/jordan/postboard/internal/repository"
)

// OwnerLookup resolves a resource id to the id of the user who owns it.
// Each resource kind supplies its own lookup; the guard body is shared.
type OwnerLookup func(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

// Ownership rejects requests whose authenticated identity does not own the
// resource named by the {id} path parameter. Must run behind Auth.
func Ownership(kind string, lookup OwnerLookup) func(http.Handler) http.Handler {
	notFoundMsg := fmt.Sprintf("%s not found", capitalize(kind))
	forbiddenMsg := fmt.Sprintf("Unauthorized: You do not own this %s", kind)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "Unauthorized access")
				return
			}

			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				respond.Error(w, http.StatusNotFound, notFoundMsg)
				return
			}

			owner, err := lookup(r.Context(), id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					respond.Error(w, http.StatusNotFound, notFoundMsg)
					return
				}
				log.Printf("ERROR [middleware.Ownership] %s lookup failed: %v", kind, err)
				respond.Error(w, http.StatusInternalServerError, "Authorization failed")
				return
			}

			if owner != claims.UserID {
				log.Printf("ERROR [middleware.Ownership] denied %s %s for user %s", kind, id, claims.UserID)
				respond.Error(w, http.StatusForbidden, forbiddenMsg)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// PostOwner guards update/delete of a post.
func PostOwner(posts repository.PostRepository) func(http.Handler) http.Handler {
	return Ownership("post", func(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
		post, err := posts.GetByID(ctx, id)
		if err != nil {
			return uuid.Nil, err
		}
		return post.UserID, nil
	})
}

// ReviewOwner guards update/delete of a review.
func ReviewOwner(reviews repository.ReviewRepository) func(http.Handler) http.Handler {
	return Ownership("review", func(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
		review, err := reviews.GetByID(ctx, id)
		if err != nil {
			return uuid.Nil, err
		}
		return review.UserID, nil
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
