package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/core/internal/adapters/repository"
	"github.com/storefront/core/internal/application/services"
	"github.com/storefront/core/internal/domain/entities"
	"github.com/storefront/core/internal/infrastructure/config"
	"github.com/storefront/core/internal/infrastructure/logger"
	"github.com/storefront/core/internal/infrastructure/storage"
	"github.com/storefront/core/internal/ports"
)

func newAuthService(t *testing.T) (*services.AuthService, *services.UserService) {
	t.Helper()
	store := storage.New(t.TempDir())
	repo := repository.NewUserRepository(store.Collection("users", "user"), logger.NewNop())
	digest := services.NewPasswordDigest(config.PasswordSchemeSHA256)
	tokens := services.NewTokenIssuer(config.AuthConfig{TokenMode: config.TokenModeOpaque})
	users := services.NewUserService(repo, digest, logger.NewNop())
	return services.NewAuthService(users, repo, digest, tokens, logger.NewNop()), users
}

func TestRegisterThenLogin(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	reg, err := auth.Register(ctx, ports.RegisterRequest{
		Name:     "A",
		Email:    "a@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(reg.Token, "local_user_token_"))
	assert.NotContains(t, reg.User, "password")

	login, err := auth.Login(ctx, ports.LoginRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID(), login.User.ID())
	assert.NotContains(t, login.User, "password")

	_, err = auth.Login(ctx, ports.LoginRequest{Email: "a@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
}

func TestLoginIsCaseInsensitiveOnEmail(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, ports.RegisterRequest{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = auth.Login(ctx, ports.LoginRequest{Email: "A@X.COM", Password: "secret1"})
	assert.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, ports.RegisterRequest{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = auth.Register(ctx, ports.RegisterRequest{Name: "B", Email: "A@x.COM", Password: "secret2"})
	assert.ErrorIs(t, err, entities.ErrEmailTaken)
}

func TestLoginUnknownEmail(t *testing.T) {
	auth, _ := newAuthService(t)

	_, err := auth.Login(context.Background(), ports.LoginRequest{Email: "nobody@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	auth, users := newAuthService(t)
	ctx := context.Background()

	reg, err := auth.Register(ctx, ports.RegisterRequest{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = users.ToggleActive(ctx, reg.User.ID())
	require.NoError(t, err)

	_, err = auth.Login(ctx, ports.LoginRequest{Email: "a@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, entities.ErrAccountInactive)
}
