package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jordan/postboard/internal/config"
	"github.com/jordan/postboard/internal/domain"
	"github.com/jordan/postboard/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "token-test-secret",
		JWTExpirationHours: 1,
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	authService := service.NewAuthService(nil, tokenTestConfig())

	user := &domain.User{
		ID:    uuid.New(),
		Name:  "alice",
		Email: "alice@example.com",
		Role:  domain.RoleAdmin,
	}

	token, err := authService.IssueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)

	// Every encoded field survives the round trip.
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Name, claims.Name)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Role, claims.Role)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestAuthService_ValidateToken_Tampered(t *testing.T) {
	authService := service.NewAuthService(nil, tokenTestConfig())

	user := &domain.User{ID: uuid.New(), Name: "bob", Email: "bob@example.com", Role: domain.RoleUser}
	token, err := authService.IssueToken(user)
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = authService.ValidateToken(tampered)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	issuer := service.NewAuthService(nil, &config.Config{JWTSecret: "secret-one", JWTExpirationHours: 1})
	verifier := service.NewAuthService(nil, &config.Config{JWTSecret: "secret-two", JWTExpirationHours: 1})

	user := &domain.User{ID: uuid.New(), Name: "carol", Email: "carol@example.com", Role: domain.RoleUser}
	token, err := issuer.IssueToken(user)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	// Negative expiry issues tokens that are already dead.
	authService := service.NewAuthService(nil, &config.Config{JWTSecret: "token-test-secret", JWTExpirationHours: -1})

	user := &domain.User{ID: uuid.New(), Name: "dave", Email: "dave@example.com", Role: domain.RoleUser}
	token, err := authService.IssueToken(user)
	require.NoError(t, err)

	_, err = authService.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	authService := service.NewAuthService(nil, tokenTestConfig())

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := authService.ValidateToken(token)
		assert.ErrorIs(t, err, service.ErrTokenInvalid, "token %q", token)
	}
}
