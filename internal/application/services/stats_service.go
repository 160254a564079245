package services

import (
	"context"
	"fmt"

	"github.com/storefront/core/internal/domain/entities"
	"github.com/storefront/core/internal/infrastructure/logger"
	"github.com/storefront/core/internal/ports"
)

// StatsService computes the dashboard aggregates from the products,
// orders and users collections.
type StatsService struct {
	products ports.DocumentRepository
	orders   ports.DocumentRepository
	users    ports.DocumentRepository
	logger   *logger.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(products, orders, users ports.DocumentRepository, logger *logger.Logger) *StatsService {
	return &StatsService{
		products: products,
		orders:   orders,
		users:    users,
		logger:   logger,
	}
}

// DashboardStats returns collection counts plus total revenue, the sum
// of totalOrderPrice across all orders.
func (s *StatsService) DashboardStats(ctx context.Context) (*entities.DashboardStats, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	var revenue float64
	for _, order := range orders {
		revenue += order.Number("totalOrderPrice")
	}

	return &entities.DashboardStats{
		TotalProducts: len(products),
		TotalOrders:   len(orders),
		TotalUsers:    len(users),
		TotalRevenue:  revenue,
	}, nil
}
