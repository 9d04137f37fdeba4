package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderRepository defines persistence for orders.
// Recognised filter keys: "status" (OrderStatus). Search matches order and
// tracking numbers.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindForCustomer reads another customer's order as not found
	FindForCustomer(ctx context.Context, customerID, id uuid.UUID) (*Order, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Order, error)
	CountByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (int64, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Order, error)
	// FindForExport returns every order matching the filter, newest first, without paging
	FindForExport(ctx context.Context, filter shared.Filter) ([]Order, error)
	// Create inserts the order with its items. A clash on the order number
	// returns ErrOrderNumberTaken and leaves the surrounding transaction usable.
	Create(ctx context.Context, order *Order) error
	// Save updates the order header guarded by its version, returning
	// ErrConcurrencyConflict when another writer got there first
	Save(ctx context.Context, order *Order) error
}

// PeriodStats aggregates order volume and revenue
type PeriodStats struct {
	Orders  int64
	Revenue decimal.Decimal
}

// ProductSales is a best-seller row
type ProductSales struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int64
	Revenue     decimal.Decimal
}

// AnalyticsRepository computes order analytics. Revenue excludes cancelled orders.
type AnalyticsRepository interface {
	// Stats covers orders created at or after since; a zero since covers all time
	Stats(ctx context.Context, since time.Time) (*PeriodStats, error)
	StatusBreakdown(ctx context.Context) (map[OrderStatus]int64, error)
	TopProducts(ctx context.Context, limit int) ([]ProductSales, error)
}
