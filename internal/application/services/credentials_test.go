package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/core/internal/application/services"
	"github.com/storefront/core/internal/domain/entities"
	"github.com/storefront/core/internal/infrastructure/config"
)

func TestSHA256DigestIsDeterministic(t *testing.T) {
	digest := services.NewPasswordDigest(config.PasswordSchemeSHA256)

	first, err := digest.Digest("secret1")
	require.NoError(t, err)
	second, err := digest.Digest("secret1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64, "sha256 hex digest")
	assert.True(t, digest.Verify("secret1", first))
	assert.False(t, digest.Verify("wrong", first))
}

func TestBcryptDigestVerifies(t *testing.T) {
	digest := services.NewPasswordDigest(config.PasswordSchemeBcrypt)

	stored, err := digest.Digest("secret1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored, "$2"))
	assert.True(t, digest.Verify("secret1", stored))
	assert.False(t, digest.Verify("wrong", stored))
}

func TestVerifyHandlesMixedSchemes(t *testing.T) {
	legacy := services.NewPasswordDigest(config.PasswordSchemeSHA256)
	hardened := services.NewPasswordDigest(config.PasswordSchemeBcrypt)

	legacyStored, err := legacy.Digest("secret1")
	require.NoError(t, err)

	// A store migrated to bcrypt still verifies legacy digests.
	assert.True(t, hardened.Verify("secret1", legacyStored))
}

func TestOpaqueTokens(t *testing.T) {
	issuer := services.NewTokenIssuer(config.AuthConfig{TokenMode: config.TokenModeOpaque})

	token, err := issuer.Issue(entities.Record{"_id": "user_1_abc"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "local_user_token_"))

	_, err = issuer.Validate(token)
	assert.NoError(t, err)

	_, err = issuer.Validate("garbage")
	assert.Error(t, err)
}

func TestJWTTokens(t *testing.T) {
	issuer := services.NewTokenIssuer(config.AuthConfig{
		TokenMode:      config.TokenModeJWT,
		TokenSecret:    "test-secret",
		TokenExpiresIn: time.Hour,
		TokenIssuer:    "storefront-test",
	})

	user := entities.Record{"_id": "user_1_abc", "email": "a@x.com"}
	token, err := issuer.Issue(user)
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user_1_abc", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)

	other := services.NewTokenIssuer(config.AuthConfig{
		TokenMode:   config.TokenModeJWT,
		TokenSecret: "different-secret",
	})
	_, err = other.Validate(token)
	assert.Error(t, err)
}
