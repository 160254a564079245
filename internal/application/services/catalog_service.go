package services

import (
	"context"
	"fmt"

	"github.com/storefront/core/internal/domain/entities"
	"github.com/storefront/core/internal/infrastructure/logger"
	"github.com/storefront/core/internal/ports"
)

// CatalogService handles CRUD for one resource collection. Every
// catalog resource (products, categories, brands, subcategories,
// orders) is served by an instance of this one implementation.
type CatalogService struct {
	name   string
	repo   ports.DocumentRepository
	logger *logger.Logger
}

// NewCatalogService creates a catalog service for a named resource.
func NewCatalogService(name string, repo ports.DocumentRepository, logger *logger.Logger) *CatalogService {
	return &CatalogService{
		name:   name,
		repo:   repo,
		logger: logger,
	}
}

// List returns every record in the collection.
func (s *CatalogService) List(ctx context.Context) ([]entities.Record, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.name, err)
	}
	return records, nil
}

// Get returns one record by id.
func (s *CatalogService) Get(ctx context.Context, id string) (entities.Record, error) {
	return s.repo.Get(ctx, id)
}

// Create persists a new record with generated id and timestamps.
func (s *CatalogService) Create(ctx context.Context, payload entities.Record) (entities.Record, error) {
	rec, err := s.repo.Create(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("create %s record: %w", s.name, err)
	}

	s.logger.Info("Record created", "collection", s.name, "id", rec.ID())
	return rec, nil
}

// Update shallow-merges patch over the stored record.
func (s *CatalogService) Update(ctx context.Context, id string, patch entities.Record) (entities.Record, error) {
	rec, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Record updated", "collection", s.name, "id", id)
	return rec, nil
}

// Delete removes a record by id.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Record deleted", "collection", s.name, "id", id)
	return nil
}
