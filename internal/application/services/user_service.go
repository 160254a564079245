package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/storefront/core/internal/domain/entities"
	"github.com/storefront/core/internal/infrastructure/logger"
	"github.com/storefront/core/internal/ports"
)

// UserService layers the user policies over the document store: the
// password field is digested before it is written, never returned to
// callers, and email is immutable after creation.
type UserService struct {
	userRepo ports.UserRepository
	digest   *PasswordDigest
	logger   *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo ports.UserRepository, digest *PasswordDigest, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		digest:   digest,
		logger:   logger,
	}
}

// ListUsers returns all users with passwords stripped.
func (s *UserService) ListUsers(ctx context.Context) ([]entities.Record, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]entities.Record, len(users))
	for i, u := range users {
		out[i] = u.WithoutPassword()
	}
	return out, nil
}

// GetUser returns one user by id with the password stripped.
func (s *UserService) GetUser(ctx context.Context, id string) (entities.Record, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.WithoutPassword(), nil
}

// CreateUser creates a user. The email must not already exist
// (case-insensitively); the password is digested before storage.
func (s *UserService) CreateUser(ctx context.Context, req ports.CreateUserRequest) (entities.Record, error) {
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, entities.ErrEmailTaken
	}

	digest, err := s.digest.Digest(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = "user"
	}

	user, err := s.userRepo.Create(ctx, entities.Record{
		"name":      req.Name,
		"email":     strings.ToLower(req.Email),
		"password":  digest,
		"phone":     req.Phone,
		"role":      role,
		"active":    true,
		"addresses": []interface{}{},
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("User created", "user_id", user.ID(), "email", user.String("email"))

	return user.WithoutPassword(), nil
}

// UpdateUser applies a partial update to a user. A password in the
// patch is digested first; email is stripped because it is immutable
// after creation.
func (s *UserService) UpdateUser(ctx context.Context, id string, patch entities.Record) (entities.Record, error) {
	patch = patch.Clone()
	delete(patch, "email")

	if password, ok := patch["password"].(string); ok && password != "" {
		digest, err := s.digest.Digest(password)
		if err != nil {
			return nil, err
		}
		patch["password"] = digest
	} else {
		delete(patch, "password")
	}

	user, err := s.userRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User updated", "user_id", id)

	return user.WithoutPassword(), nil
}

// DeleteUser removes a user by id.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("User deleted", "user_id", id)
	return nil
}

// ToggleActive flips the user's active flag.
func (s *UserService) ToggleActive(ctx context.Context, id string) (entities.Record, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.userRepo.Update(ctx, id, entities.Record{"active": !user.Bool("active")})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User active flag toggled", "user_id", id, "active", updated.Bool("active"))

	return updated.WithoutPassword(), nil
}
