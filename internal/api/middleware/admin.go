package middleware

import (
	"net/http"

	"github.com/jordan/postboard/internal/api/respond"
	"github.com/jordan/postboard/internal/domain"
)

// RequireAdmin restricts a route to administrators. Must run behind Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "Unauthorized access")
			return
		}

		if claims.Role != domain.RoleAdmin {
			respond.Error(w, http.StatusForbidden, "Access denied. Admins only.")
			return
		}

		next.ServeHTTP(w, r)
	})
}
