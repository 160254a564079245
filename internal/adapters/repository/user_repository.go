package repository

import (
	"context"
	"strings"

	"github.com/storefront/core/internal/domain/entities"
	"github.com/storefront/core/internal/infrastructure/logger"
	"github.com/storefront/core/internal/infrastructure/storage"
	"github.com/storefront/core/internal/ports"
)

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	DocumentRepositoryImpl
}

// NewUserRepository creates a repository over the users collection.
func NewUserRepository(col *storage.Collection, appLogger *logger.Logger) ports.UserRepository {
	return &UserRepositoryImpl{DocumentRepositoryImpl{col: col, logger: appLogger}}
}

// GetByEmail returns the first user whose email matches
// case-insensitively, or entities.ErrNotFound.
func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (entities.Record, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	email = strings.ToLower(email)
	for _, u := range users {
		if strings.ToLower(u.String("email")) == email {
			return u, nil
		}
	}
	return nil, entities.ErrNotFound
}
