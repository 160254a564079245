package repository

import (
	"context"
	"errors"
	"time"

	"github.com/storefront/core/internal/infrastructure/logger"
	"github.com/storefront/core/internal/infrastructure/storage"
	"github.com/storefront/core/internal/ports"

	"github.com/storefront/core/internal/domain/entities"
)

// DocumentRepositoryImpl implements the DocumentRepository interface on
// top of one file-backed collection.
type DocumentRepositoryImpl struct {
	col    *storage.Collection
	logger *logger.Logger
}

// NewDocumentRepository creates a repository over the given collection.
func NewDocumentRepository(col *storage.Collection, appLogger *logger.Logger) ports.DocumentRepository {
	return &DocumentRepositoryImpl{col: col, logger: appLogger}
}

// Store operations are local file IO and define no cancellation
// semantics; the context is only consulted before starting work.

func (r *DocumentRepositoryImpl) List(ctx context.Context) ([]entities.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	records, err := r.col.List()
	r.logOp("list", start, err)
	return records, err
}

func (r *DocumentRepositoryImpl) Get(ctx context.Context, id string) (entities.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	rec, err := r.col.Get(id)
	r.logOp("get", start, err)
	return rec, err
}

func (r *DocumentRepositoryImpl) Create(ctx context.Context, payload entities.Record) (entities.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	rec, err := r.col.Create(payload)
	r.logOp("create", start, err)
	return rec, err
}

func (r *DocumentRepositoryImpl) Update(ctx context.Context, id string, patch entities.Record) (entities.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	rec, err := r.col.Update(id, patch)
	r.logOp("update", start, err)
	return rec, err
}

func (r *DocumentRepositoryImpl) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := r.col.Delete(id)
	r.logOp("delete", start, err)
	return err
}

func (r *DocumentRepositoryImpl) logOp(op string, start time.Time, err error) {
	// Lookups miss all the time; that is not a store failure.
	if errors.Is(err, entities.ErrNotFound) {
		err = nil
	}
	r.logger.LogStoreOperation(r.col.Name(), op, float64(time.Since(start).Nanoseconds())/1e6, err)
}
