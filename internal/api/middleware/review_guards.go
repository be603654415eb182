package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jordan/postboard/internal/api/respond"
	"github.com/jordan/postboard/internal/domain"
	"github.com/jordan/postboard/internal/repository"
)

// PreventSelfReview rejects review creation when the requester owns the
// target post. Must run behind Auth.
func PreventSelfReview(posts repository.PostRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "Unauthorized access")
				return
			}

			postID, err := uuid.Parse(chi.URLParam(r, "postId"))
			if err != nil {
				respond.Error(w, http.StatusNotFound, "Post not found")
				return
			}

			post, err := posts.GetByID(r.Context(), postID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					respond.Error(w, http.StatusNotFound, "Post not found")
					return
				}
				log.Printf("ERROR [middleware.PreventSelfReview] post lookup failed: %v", err)
				respond.Error(w, http.StatusInternalServerError, "Authorization failed")
				return
			}

			if post.UserID == claims.UserID {
				respond.Error(w, http.StatusForbidden, "You cannot review your own post")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// PreventDuplicateReview rejects review creation when the requester already
// reviewed the target post. The check is a fast path only: two concurrent
// submissions can both pass before either write lands, so the reviews table
// carries a (post_id, user_id) unique index as the authority of record.
func PreventDuplicateReview(reviews repository.ReviewRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "Unauthorized access")
				return
			}

			postID, err := uuid.Parse(chi.URLParam(r, "postId"))
			if err != nil {
				respond.Error(w, http.StatusNotFound, "Post not found")
				return
			}

			_, err = reviews.GetByPostAndUser(r.Context(), postID, claims.UserID)
			if err == nil {
				respond.Error(w, http.StatusForbidden, "You have already reviewed this post")
				return
			}
			if !errors.Is(err, domain.ErrNotFound) {
				log.Printf("ERROR [middleware.PreventDuplicateReview] review lookup failed: %v", err)
				respond.Error(w, http.StatusInternalServerError, "Authorization failed")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
