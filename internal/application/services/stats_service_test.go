package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/core/internal/adapters/repository"
	"github.com/storefront/core/internal/application/services"
	"github.com/storefront/core/internal/domain/entities"
	"github.com/storefront/core/internal/infrastructure/logger"
	"github.com/storefront/core/internal/infrastructure/storage"
)

func TestDashboardStats(t *testing.T) {
	store := storage.New(t.TempDir())
	products := repository.NewDocumentRepository(store.Collection("products", "product"), logger.NewNop())
	orders := repository.NewDocumentRepository(store.Collection("orders", "order"), logger.NewNop())
	users := repository.NewDocumentRepository(store.Collection("users", "user"), logger.NewNop())
	svc := services.NewStatsService(products, orders, users, logger.NewNop())

	ctx := context.Background()

	_, err := products.Create(ctx, entities.Record{"name": "Keyboard"})
	require.NoError(t, err)

	_, err = orders.Create(ctx, entities.Record{"totalOrderPrice": 10.0})
	require.NoError(t, err)
	_, err = orders.Create(ctx, entities.Record{"totalOrderPrice": 25.0})
	require.NoError(t, err)
	// Orders without a price count toward totals but not revenue.
	_, err = orders.Create(ctx, entities.Record{"orderStatus": "pending"})
	require.NoError(t, err)

	stats, err := svc.DashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 0, stats.TotalUsers)
	assert.Equal(t, 35.0, stats.TotalRevenue)
}

func TestDashboardStatsEmptyStore(t *testing.T) {
	store := storage.New(t.TempDir())
	svc := services.NewStatsService(
		repository.NewDocumentRepository(store.Collection("products", "product"), logger.NewNop()),
		repository.NewDocumentRepository(store.Collection("orders", "order"), logger.NewNop()),
		repository.NewDocumentRepository(store.Collection("users", "user"), logger.NewNop()),
		logger.NewNop(),
	)

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &entities.DashboardStats{}, stats)
}
