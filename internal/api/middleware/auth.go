package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/jordan/postboard/internal/api/respond"
	"github.com/jordan/postboard/internal/service"
)

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "token"

type contextKey string

const claimsKey contextKey = "claims"

// Auth verifies the session token and attaches the decoded claim set to the
// request context. It is the only point where trust is established; every
// guard behind it reads the claims without re-verifying the signature.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] no session token presented")
				respond.Error(w, http.StatusUnauthorized, "Unauthorized access")
				return
			}

			claims, err := authService.ValidateToken(cookie.Value)
			if err != nil {
				// The client sees one classification; the log keeps the
				// expired and tampered cases apart.
				if errors.Is(err, service.ErrTokenExpired) {
					log.Printf("ERROR [middleware.Auth] session token expired")
				} else {
					log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
				}
				respond.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims returns the verified claim set placed by Auth.
func GetClaims(ctx context.Context) (*service.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*service.Claims)
	return claims, ok
}
