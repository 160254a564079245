package services_test

import (
	"context"
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

func newUserService(t *testing.T) (*services.UserService, ports.UserRepository) {
	t.Helper()
	store := storage.New(t.TempDir())
	repo := repository.NewUserRepository(store.Collection("users", "user"), logger.NewNop())
	digest := services.NewPasswordDigest(config.PasswordSchemeSHA256)
	return services.NewUserService(repo, digest, logger.NewNop()), repo
}

func TestCreateUserDefaults(t *testing.T) {
	svc, repo := newUserService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, ports.CreateUserRequest{
		Name:     "Alice",
		Email:    "Alice@Example.COM",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.String("email"), "email is lowercased")
	assert.Equal(t, "user", user.String("role"))
	assert.True(t, user.Bool("active"))
	assert.Contains(t, user, "addresses")
	assert.NotContains(t, user, "password", "responses never carry the password")

	// The stored record carries the digest, not the plaintext.
	stored, err := repo.Get(ctx, user.ID())
	require.NoError(t, err)
	assert.NotEmpty(t, stored.String("password"))
	assert.NotEqual(t, "secret1", stored.String("password"))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, ports.CreateUserRequest{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, ports.CreateUserRequest{Name: "B", Email: "A@X.COM", Password: "secret2"})
	assert.ErrorIs(t, err, entities.ErrEmailTaken)
}

func TestUpdateUserStripsEmailAndHashesPassword(t *testing.T) {
	svc, repo := newUserService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, ports.CreateUserRequest{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	updated, err := svc.UpdateUser(ctx, user.ID(), entities.Record{
		"email":    "hijack@x.com",
		"name":     "Alice",
		"password": "newsecret",
	})
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", updated.String("email"), "email is immutable")
	assert.Equal(t, "Alice", updated.String("name"))
	assert.NotContains(t, updated, "password")

	stored, err := repo.Get(ctx, user.ID())
	require.NoError(t, err)
	assert.NotEqual(t, "newsecret", stored.String("password"))

	digest := services.NewPasswordDigest(config.PasswordSchemeSHA256)
	assert.True(t, digest.Verify("newsecret", stored.String("password")))
}

func TestUpdateUserEmptyPasswordLeavesDigest(t *testing.T) {
	svc, repo := newUserService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, ports.CreateUserRequest{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	before, err := repo.Get(ctx, user.ID())
	require.NoError(t, err)

	_, err = svc.UpdateUser(ctx, user.ID(), entities.Record{"password": "", "name": "B"})
	require.NoError(t, err)

	after, err := repo.Get(ctx, user.ID())
	require.NoError(t, err)
	assert.Equal(t, before.String("password"), after.String("password"))
}

func TestToggleActive(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, ports.CreateUserRequest{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.True(t, user.Bool("active"))

	toggled, err := svc.ToggleActive(ctx, user.ID())
	require.NoError(t, err)
	assert.False(t, toggled.Bool("active"))

	toggled, err = svc.ToggleActive(ctx, user.ID())
	require.NoError(t, err)
	assert.True(t, toggled.Bool("active"))
}

func TestListUsersStripsPasswords(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, ports.CreateUserRequest{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.NotContains(t, users[0], "password")
}
