package ports

import (
	"context"

	"github.com/storefront/core/internal/domain/entities"
)

// CatalogService interface for generic resource CRUD
type CatalogService interface {
	List(ctx context.Context) ([]entities.Record, error)
	Get(ctx context.Context, id string) (entities.Record, error)
	Create(ctx context.Context, payload entities.Record) (entities.Record, error)
	Update(ctx context.Context, id string, patch entities.Record) (entities.Record, error)
	Delete(ctx context.Context, id string) error
}

// UserService interface for user management operations
type UserService interface {
	ListUsers(ctx context.Context) ([]entities.Record, error)
	GetUser(ctx context.Context, id string) (entities.Record, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (entities.Record, error)
	UpdateUser(ctx context.Context, id string, patch entities.Record) (entities.Record, error)
	DeleteUser(ctx context.Context, id string) error
	ToggleActive(ctx context.Context, id string) (entities.Record, error)
}

// AuthService interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	ValidateToken(token string) (*Claims, error)
}

// StatsService interface for dashboard aggregates
type StatsService interface {
	DashboardStats(ctx context.Context) (*entities.DashboardStats, error)
}

// Request/Response Types

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest mirrors RegisterRequest; the admin console creates
// users through the same validation rules.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// AuthResult carries the authenticated user (password already stripped)
// and the issued bearer token.
type AuthResult struct {
	User  entities.Record `json:"user"`
	Token string          `json:"token"`
}

// Claims is what token validation yields. Opaque tokens carry no
// claims; only the signed token mode fills these in.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
