package service_test

import (
	"context"
	"testing"

	"github.com/jordan/postboard/internal/domain"
	repoPostgres "github.com/jordan/postboard/internal/repository/postgres"
	"github.com/jordan/postboard/internal/service"
	"github.com/jordan/postboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	testDB := testutil.NewTestDB(t)
	repos := repoPostgres.NewRepositories(testDB.DB)
	authService := service.NewAuthService(repos.User, testutil.TestConfig())
	ctx := context.Background()

	t.Run("register hashes the password and defaults the role", func(t *testing.T) {
		testDB.Truncate(t)

		user, err := authService.Register(ctx, service.RegisterInput{
			Name:     "alice",
			Email:    "alice@example.com",
			Password: "s3cret-password",
		})
		require.NoError(t, err)

		assert.Equal(t, domain.RoleUser, user.Role)
		assert.NotEqual(t, "s3cret-password", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-password")))
	})

	t.Run("register rejects a taken email", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := authService.Register(ctx, service.RegisterInput{
			Name: "alice", Email: "taken@example.com", Password: "pw-one",
		})
		require.NoError(t, err)

		_, err = authService.Register(ctx, service.RegisterInput{
			Name: "imposter", Email: "taken@example.com", Password: "pw-two",
		})
		assert.ErrorIs(t, err, domain.ErrEmailExists)
	})

	t.Run("login returns the user and a verifiable token", func(t *testing.T) {
		testDB.Truncate(t)

		registered, err := authService.Register(ctx, service.RegisterInput{
			Name: "bob", Email: "bob@example.com", Password: "bobs-password",
		})
		require.NoError(t, err)

		result, err := authService.Login(ctx, service.LoginInput{
			Email: "bob@example.com", Password: "bobs-password",
		})
		require.NoError(t, err)

		assert.Equal(t, registered.ID, result.User.ID)

		claims, err := authService.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, claims.UserID)
		assert.Equal(t, "bob", claims.Name)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := authService.Register(ctx, service.RegisterInput{
			Name: "carol", Email: "carol@example.com", Password: "right-password",
		})
		require.NoError(t, err)

		_, err = authService.Login(ctx, service.LoginInput{
			Email: "carol@example.com", Password: "wrong-password",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("login with unknown email is indistinguishable from bad password", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := authService.Login(ctx, service.LoginInput{
			Email: "nobody@example.com", Password: "whatever",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
