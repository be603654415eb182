package middleware

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/jordan/postboard/internal/api/respond"
	"github.com/jordan/postboard/internal/quota"
)

// RateLimit caps AI-assisted operations per identity within the current
// quota window. Must run behind Auth.
func RateLimit(store quota.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "Unauthorized access")
				return
			}

			if !store.Consume(claims.UserID.String()) {
				retryAfter := int(time.Until(store.NextReset()).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				log.Printf("ERROR [middleware.RateLimit] quota exhausted for user %s", claims.UserID)
				respond.Error(w, http.StatusTooManyRequests, "Too many AI requests. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
