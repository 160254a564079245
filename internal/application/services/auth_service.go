package services

import (
	"context"

	"github.com/storefront/core/internal/domain/entities"
	"github.com/storefront/core/internal/infrastructure/logger"
	"github.com/storefront/core/internal/ports"
)

// AuthService handles registration, login and token validation.
type AuthService struct {
	users    *UserService
	userRepo ports.UserRepository
	digest   *PasswordDigest
	tokens   *TokenIssuer
	logger   *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users *UserService, userRepo ports.UserRepository, digest *PasswordDigest, tokens *TokenIssuer, logger *logger.Logger) *AuthService {
	return &AuthService{
		users:    users,
		userRepo: userRepo,
		digest:   digest,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates a new user account and issues a token for it.
func (s *AuthService) Register(ctx context.Context, req ports.RegisterRequest) (*ports.AuthResult, error) {
	user, err := s.users.CreateUser(ctx, ports.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", "user_id", user.ID(), "email", user.String("email"))

	return &ports.AuthResult{User: user, Token: token}, nil
}

// Login authenticates a user by email and password. Unknown emails and
// wrong passwords both yield ErrInvalidCredentials; an inactive account
// with correct credentials yields ErrAccountInactive.
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*ports.AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Warn("Login attempt with unknown email", "email", req.Email)
		return nil, entities.ErrInvalidCredentials
	}

	if !user.Bool("active") {
		s.logger.Warn("Login attempt on inactive account", "user_id", user.ID())
		return nil, entities.ErrAccountInactive
	}

	if !s.digest.Verify(req.Password, user.String("password")) {
		s.logger.Warn("Login attempt with invalid password", "user_id", user.ID())
		return nil, entities.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", "user_id", user.ID())

	return &ports.AuthResult{User: user.WithoutPassword(), Token: token}, nil
}

// ValidateToken checks a presented bearer token.
func (s *AuthService) ValidateToken(token string) (*ports.Claims, error) {
	return s.tokens.Validate(token)
}
