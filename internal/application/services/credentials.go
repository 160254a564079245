package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/storefront/core/internal/domain/entities"
	"github.com/storefront/core/internal/infrastructure/config"
	"github.com/storefront/core/internal/infrastructure/storage"
	"github.com/storefront/core/internal/ports"
)

// PasswordDigest is the one-way transform applied to passwords before
// they reach the users collection.
//
// The default scheme is an unsalted SHA-256 hex digest. That is
// deliberately byte-compatible with existing data files: identical
// passwords produce identical digests, which is cryptographically weak.
// Deployments that can re-enroll credentials should switch the scheme
// to bcrypt in configuration.
type PasswordDigest struct {
	scheme string
}

// NewPasswordDigest creates a digest helper for the configured scheme.
func NewPasswordDigest(scheme string) *PasswordDigest {
	return &PasswordDigest{scheme: scheme}
}

// Digest transforms a plaintext credential into its storable form.
func (d *PasswordDigest) Digest(plaintext string) (string, error) {
	if d.scheme == config.PasswordSchemeBcrypt {
		hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
		if err != nil {
			return "", fmt.Errorf("hash password: %w", err)
		}
		return string(hashed), nil
	}

	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:]), nil
}

// Verify reports whether plaintext matches the stored digest. The
// stored form decides the comparison, so a collection with a mix of
// legacy SHA-256 digests and bcrypt digests keeps working.
func (d *PasswordDigest) Verify(plaintext, stored string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
	}

	sum := sha256.Sum256([]byte(plaintext))
	digest := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(digest), []byte(stored)) == 1
}

// tokenClaims is the JWT claim set used by the signed token mode.
type tokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and validates bearer tokens.
//
// The default mode issues opaque local_user_token_* strings with no
// signature and no expiry, accepted at face value wherever presented.
// The jwt mode issues signed, time-boxed HS256 tokens instead; it must
// be enabled explicitly because it changes what clients receive.
type TokenIssuer struct {
	cfg config.AuthConfig
}

// NewTokenIssuer creates a token issuer for the configured mode.
func NewTokenIssuer(cfg config.AuthConfig) *TokenIssuer {
	return &TokenIssuer{cfg: cfg}
}

// Issue mints a token for the given user record.
func (t *TokenIssuer) Issue(user entities.Record) (string, error) {
	if t.cfg.TokenMode != config.TokenModeJWT {
		return storage.NewToken(), nil
	}

	claims := &tokenClaims{
		UserID: user.ID(),
		Email:  user.String("email"),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.cfg.TokenExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    t.cfg.TokenIssuer,
			Subject:   user.ID(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(t.cfg.TokenSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks a presented token. Opaque tokens are only checked for
// shape; signed tokens are verified and yield claims.
func (t *TokenIssuer) Validate(token string) (*ports.Claims, error) {
	if t.cfg.TokenMode != config.TokenModeJWT {
		if !strings.HasPrefix(token, "local_user_token_") {
			return nil, fmt.Errorf("unrecognized token")
		}
		return &ports.Claims{}, nil
	}

	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tk.Header["alg"])
		}
		return []byte(t.cfg.TokenSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &ports.Claims{UserID: claims.UserID, Email: claims.Email}, nil
}
