package service

import (
	"context"
	"fmt"
	"time"

	"pos-service/internal/models"
	"pos-service/internal/util"

	"go.uber.org/zap"
)

// AnalyticsStore is the data access surface the analytics service needs.
// *store.Store satisfies it.
type AnalyticsStore interface {
	CountActiveProducts(ctx context.Context) (int64, error)
	CountTransactions(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	SalesSince(ctx context.Context, since time.Time) (float64, int64, error)
}

// AnalyticsService serves read-only aggregates over the catalog and the
// sales ledger. Every call recomputes from the store; nothing is cached.
type AnalyticsService struct {
	store             AnalyticsStore
	lowStockThreshold int
	logger            *zap.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(store AnalyticsStore, lowStockThreshold int) *AnalyticsService {
	return &AnalyticsService{
		store:             store,
		lowStockThreshold: lowStockThreshold,
		logger:            util.GetLogger(),
	}
}

// Categories lists the distinct categories of active products.
func (s *AnalyticsService) Categories(ctx context.Context) ([]string, error) {
	ctx, span := util.StartSpan(ctx, "AnalyticsService.Categories")
	defer span.End()

	return s.store.DistinctCategories(ctx)
}

// DashboardStats assembles the dashboard snapshot as of now.
func (s *AnalyticsService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	ctx, span := util.StartSpan(ctx, "AnalyticsService.DashboardStats")
	defer span.End()

	totalProducts, err := s.store.CountActiveProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	totalTransactions, err := s.store.CountTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	revenue, count, err := s.store.SalesSince(ctx, startOfDayUTC(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate today's sales: %w", err)
	}

	lowStock, err := s.store.CountLowStock(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to count low stock products: %w", err)
	}

	return &models.DashboardStats{
		TotalProducts:     totalProducts,
		TotalTransactions: totalTransactions,
		TodayRevenue:      revenue,
		TodayTransactions: count,
		LowStockCount:     lowStock,
	}, nil
}

// startOfDayUTC returns midnight UTC of the calendar day containing t.
func startOfDayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
