package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/identity"
	"github.com/renztrending/backend/internal/domain/order"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) Stats(ctx context.Context, since time.Time) (*order.PeriodStats, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.PeriodStats), args.Error(1)
}

func (m *MockAnalyticsRepository) StatusBreakdown(ctx context.Context) (map[order.OrderStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[order.OrderStatus]int64), args.Error(1)
}

func (m *MockAnalyticsRepository) TopProducts(ctx context.Context, limit int) ([]order.ProductSales, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]order.ProductSales), args.Error(1)
}

type MockOrderRepository struct {
	order.OrderRepository
	mock.Mock
}

func (m *MockOrderRepository) FindForExport(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

type MockCustomerRepository struct {
	identity.CustomerRepository
	mock.Mock
}

func (m *MockCustomerRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.Customer, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]identity.Customer), args.Error(1)
}

type MockCategoryRepository struct {
	catalog.CategoryRepository
	mock.Mock
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) CountProducts(ctx context.Context) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

// ============================================
// AnalyticsService Tests
// ============================================

func TestAnalyticsService_OrderAnalytics(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	productID := uuid.New()

	repo := new(MockAnalyticsRepository)
	repo.On("Stats", ctx, time.Time{}).Return(&order.PeriodStats{Orders: 120, Revenue: decimal.NewFromInt(98000)}, nil)
	repo.On("Stats", ctx, now.Add(-30*24*time.Hour)).Return(&order.PeriodStats{Orders: 14, Revenue: decimal.NewFromInt(9100)}, nil)
	repo.On("StatusBreakdown", ctx).Return(map[order.OrderStatus]int64{
		order.StatusDelivered: 90,
		order.StatusCancelled: 6,
	}, nil)
	repo.On("TopProducts", ctx, 5).Return([]order.ProductSales{
		{ProductID: productID, ProductName: "Oversized Tee", Quantity: 240, Revenue: decimal.NewFromInt(119760)},
	}, nil)

	svc := NewAnalyticsService(repo, nil)
	svc.now = func() time.Time { return now }

	resp, err := svc.OrderAnalytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(120), resp.TotalOrders)
	assert.True(t, resp.TotalRevenue.Equal(decimal.NewFromInt(98000)))
	assert.Equal(t, int64(14), resp.Last30Days.Orders)
	assert.Len(t, resp.StatusBreakdown, 7)
	assert.Equal(t, int64(90), resp.StatusBreakdown["delivered"])
	assert.Equal(t, int64(0), resp.StatusBreakdown["pending"])
	require.Len(t, resp.TopProducts, 1)
	assert.Equal(t, "Oversized Tee", resp.TopProducts[0].ProductName)
}

// ============================================
// ExportService Tests
// ============================================

func TestExportService_WriteOrdersCSV(t *testing.T) {
	ctx := context.Background()

	customer, err := identity.NewCustomer("asha", "asha@example.com", "9876543210", "secret123")
	require.NoError(t, err)
	require.NoError(t, customer.UpdateProfile("Asha", "Rao", ""))

	item, err := order.NewOrderItem(nil, uuid.New(), nil, "Tee", "M", decimal.RequireFromString("499.5"), 3)
	require.NoError(t, err)
	o, err := order.NewCODOrder(customer.ID, []order.OrderItem{*item})
	require.NoError(t, err)
	o.Status = order.StatusOutForDelivery
	o.CreatedAt = time.Date(2026, 2, 1, 9, 30, 5, 0, time.UTC)

	t.Run("writes header and rows", func(t *testing.T) {
		orders := new(MockOrderRepository)
		customers := new(MockCustomerRepository)
		orders.On("FindForExport", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["status"] == order.StatusOutForDelivery
		})).Return([]order.Order{*o}, nil)
		customers.On("FindByIDs", ctx, []uuid.UUID{customer.ID}).Return([]identity.Customer{*customer}, nil)

		var buf bytes.Buffer
		svc := NewExportService(orders, customers, nil, nil)
		require.NoError(t, svc.WriteOrdersCSV(ctx, &buf, "out-for-delivery"))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "Order ID,Customer,Status,Payment,Total Amount,Items Count,Tracking Number,Created Date", lines[0])

		row, err := csv.NewReader(strings.NewReader(lines[1])).Read()
		require.NoError(t, err)
		assert.Equal(t, []string{
			o.OrderNumber, "Asha Rao", "Out for delivery", "Cash on delivery",
			"1498.50", "3", o.TrackingNumber, "2026-02-01 09:30:05",
		}, row)
	})

	t.Run("empty export still has a header", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("FindForExport", ctx, mock.Anything).Return([]order.Order{}, nil)

		var buf bytes.Buffer
		require.NoError(t, NewExportService(orders, new(MockCustomerRepository), nil, nil).WriteOrdersCSV(ctx, &buf, ""))
		assert.Equal(t, "Order ID,Customer,Status,Payment,Total Amount,Items Count,Tracking Number,Created Date\n", buf.String())
	})

	t.Run("bad status filter", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewExportService(new(MockOrderRepository), nil, nil, nil).WriteOrdersCSV(ctx, &buf, "lost")
		assert.ErrorIs(t, err, shared.ErrValidation)
		assert.Empty(t, buf.String())
	})
}

func TestExportService_WriteCategoriesCSV(t *testing.T) {
	ctx := context.Background()
	men, err := catalog.NewCategory("Men", nil)
	require.NoError(t, err)
	tees, err := catalog.NewCategory("T-Shirts, Printed", &men.ID)
	require.NoError(t, err)
	tees.ImageURL = "https://cdn.example.com/tees.webp"

	categories := new(MockCategoryRepository)
	categories.On("FindAll", ctx).Return([]catalog.Category{*men, *tees}, nil)
	categories.On("CountProducts", ctx).Return(map[uuid.UUID]int64{tees.ID: 12}, nil)

	var buf bytes.Buffer
	require.NoError(t, NewExportService(nil, nil, categories, nil).WriteCategoriesCSV(ctx, &buf))

	assert.Equal(t,
		"Name,Parent,Total Products,Image URL\n"+
			"Men,,0,\n"+
			"\"T-Shirts, Printed\",Men,12,https://cdn.example.com/tees.webp\n",
		buf.String())
}
