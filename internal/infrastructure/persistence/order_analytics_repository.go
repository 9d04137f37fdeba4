package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/order"
	"github.com/renztrending/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOrderAnalyticsRepository aggregates order data for the admin dashboard.
// Cancelled orders are counted but never contribute revenue.
type GormOrderAnalyticsRepository struct {
	db *gorm.DB
}

// NewGormOrderAnalyticsRepository creates a new GormOrderAnalyticsRepository
func NewGormOrderAnalyticsRepository(db *gorm.DB) *GormOrderAnalyticsRepository {
	return &GormOrderAnalyticsRepository{db: db}
}

// Stats covers orders created at or after since; a zero since covers all time
func (r *GormOrderAnalyticsRepository) Stats(ctx context.Context, since time.Time) (*order.PeriodStats, error) {
	var row struct {
		Orders  int64
		Revenue decimal.NullDecimal
	}
	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Select("COUNT(*) AS orders, SUM(CASE WHEN status <> ? THEN total_amount ELSE 0 END) AS revenue", order.StatusCancelled)
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	if err := query.Scan(&row).Error; err != nil {
		return nil, err
	}
	stats := &order.PeriodStats{Orders: row.Orders, Revenue: decimal.Zero}
	if row.Revenue.Valid {
		stats.Revenue = row.Revenue.Decimal
	}
	return stats, nil
}

// StatusBreakdown counts orders per status
func (r *GormOrderAnalyticsRepository) StatusBreakdown(ctx context.Context) (map[order.OrderStatus]int64, error) {
	var rows []struct {
		Status order.OrderStatus
		Total  int64
	}
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	breakdown := make(map[order.OrderStatus]int64, len(rows))
	for _, row := range rows {
		breakdown[row.Status] = row.Total
	}
	return breakdown, nil
}

// TopProducts returns the best sellers by units sold in non-cancelled orders
func (r *GormOrderAnalyticsRepository) TopProducts(ctx context.Context, limit int) ([]order.ProductSales, error) {
	var rows []struct {
		ProductID   uuid.UUID
		ProductName string
		Quantity    int64
		Revenue     decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.OrderItemModel{}).
		Select("order_items.product_id, MAX(order_items.product_name) AS product_name, "+
			"SUM(order_items.quantity) AS quantity, SUM(order_items.amount) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status <> ?", order.StatusCancelled).
		Group("order_items.product_id").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	sales := make([]order.ProductSales, len(rows))
	for i, row := range rows {
		sales[i] = order.ProductSales{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			Revenue:     row.Revenue,
		}
	}
	return sales, nil
}

// Ensure GormOrderAnalyticsRepository implements AnalyticsRepository
var _ order.AnalyticsRepository = (*GormOrderAnalyticsRepository)(nil)
