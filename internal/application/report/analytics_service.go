// Package report serves admin analytics and CSV exports.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/order"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	recentWindow    = 30 * 24 * time.Hour
	topProductLimit = 5
)

// PeriodResponse is order volume and revenue over a period
type PeriodResponse struct {
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopProductResponse is a best-seller row
type TopProductResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// OrderAnalyticsResponse is the admin order dashboard
type OrderAnalyticsResponse struct {
	TotalOrders     int64                `json:"total_orders"`
	TotalRevenue    decimal.Decimal      `json:"total_revenue"`
	Last30Days      PeriodResponse       `json:"last_30_days"`
	StatusBreakdown map[string]int64     `json:"status_breakdown"`
	TopProducts     []TopProductResponse `json:"top_products"`
	GeneratedAt     time.Time            `json:"generated_at"`
}

// AnalyticsService computes order analytics
type AnalyticsService struct {
	repo   order.AnalyticsRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(repo order.AnalyticsRepository, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{repo: repo, logger: logger, now: time.Now}
}

// OrderAnalytics returns all-time and 30-day totals, the status breakdown
// and the best sellers. Cancelled orders never count as revenue.
func (s *AnalyticsService) OrderAnalytics(ctx context.Context) (*OrderAnalyticsResponse, error) {
	now := s.now()

	all, err := s.repo.Stats(ctx, time.Time{})
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.Stats(ctx, now.Add(-recentWindow))
	if err != nil {
		return nil, err
	}
	breakdown, err := s.repo.StatusBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopProducts(ctx, topProductLimit)
	if err != nil {
		return nil, err
	}

	statuses := make(map[string]int64, len(order.AllStatuses()))
	for _, st := range order.AllStatuses() {
		statuses[st.String()] = breakdown[st]
	}

	products := make([]TopProductResponse, len(top))
	for i, p := range top {
		products[i] = TopProductResponse{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Quantity:    p.Quantity,
			Revenue:     p.Revenue,
		}
	}

	return &OrderAnalyticsResponse{
		TotalOrders:     all.Orders,
		TotalRevenue:    all.Revenue,
		Last30Days:      PeriodResponse{Orders: recent.Orders, Revenue: recent.Revenue},
		StatusBreakdown: statuses,
		TopProducts:     products,
		GeneratedAt:     now,
	}, nil
}
