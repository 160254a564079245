package ports

import (
	"context"

	"github.com/storefront/core/internal/domain/entities"
)

// DocumentRepository defines CRUD over one named collection of
// schemaless records. Every resource shares this contract; the store
// behind it is a single generic implementation, never duplicated per
// resource.
type DocumentRepository interface {
	List(ctx context.Context) ([]entities.Record, error)
	Get(ctx context.Context, id string) (entities.Record, error)
	Create(ctx context.Context, payload entities.Record) (entities.Record, error)
	Update(ctx context.Context, id string, patch entities.Record) (entities.Record, error)
	Delete(ctx context.Context, id string) error
}

// UserRepository extends the document contract with the email lookup
// the auth flow needs. Email matching is case-insensitive.
type UserRepository interface {
	DocumentRepository
	GetByEmail(ctx context.Context, email string) (entities.Record, error)
}
