package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/identity"
	"github.com/renztrending/backend/internal/domain/order"
	"github.com/renztrending/backend/internal/domain/payment"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newTestOrder builds a COD order for 2 units in the given status
func newTestOrder(t *testing.T, customerID uuid.UUID, status order.OrderStatus) *order.Order {
	t.Helper()
	item, err := order.NewOrderItem(nil, uuid.New(), nil, "Oversized Tee", "M", decimal.NewFromInt(499), 2)
	require.NoError(t, err)
	o, err := order.NewCODOrder(customerID, []order.OrderItem{*item})
	require.NoError(t, err)
	o.Status = status
	o.ClearDomainEvents()
	return o
}

type orderFixture struct {
	orders    *MockOrderRepository
	payments  *MockPaymentRepository
	products  *MockProductRepository
	addresses *MockAddressRepository
	publisher *MockEventPublisher
	service   *OrderService
	customer  uuid.UUID
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders:    new(MockOrderRepository),
		payments:  new(MockPaymentRepository),
		products:  new(MockProductRepository),
		addresses: new(MockAddressRepository),
		publisher: new(MockEventPublisher),
		customer:  uuid.New(),
	}
	scope := NewNoOpTransactionScope(f.orders, f.payments, new(MockCartRepository), f.products)
	f.service = NewOrderService(f.orders, f.addresses, scope, f.publisher, nil)
	return f
}

// ============================================
// Read Tests
// ============================================

func TestOrderService_GetOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("own order", func(t *testing.T) {
		f := newOrderFixture()
		o := newTestOrder(t, f.customer, order.StatusPending)
		f.orders.On("FindForCustomer", ctx, f.customer, o.ID).Return(o, nil)

		resp, err := f.service.GetOrder(ctx, f.customer, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.OrderNumber, resp.OrderNumber)
		assert.Equal(t, "Pending", resp.StatusLabel)
		assert.Equal(t, 2, resp.ItemCount)
	})

	t.Run("foreign order reads as not found", func(t *testing.T) {
		f := newOrderFixture()
		id := uuid.New()
		f.orders.On("FindForCustomer", ctx, f.customer, id).Return(nil, shared.ErrNotFound)

		_, err := f.service.GetOrder(ctx, f.customer, id)
		assert.Equal(t, ErrOrderNotFound, err)
	})
}

func TestOrderService_ListCustomerOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("maps status filter", func(t *testing.T) {
		f := newOrderFixture()
		matches := mock.MatchedBy(func(filter shared.Filter) bool {
			return filter.Filters["status"] == order.StatusOutForDelivery &&
				filter.OrderBy == "created_at" && filter.OrderDir == "desc"
		})
		f.orders.On("FindByCustomer", ctx, f.customer, matches).Return([]order.Order{*newTestOrder(t, f.customer, order.StatusOutForDelivery)}, nil)
		f.orders.On("CountByCustomer", ctx, f.customer, matches).Return(int64(1), nil)

		orders, total, err := f.service.ListCustomerOrders(ctx, f.customer, OrderListFilter{Status: "Out for delivery"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, orders, 1)
		assert.Equal(t, "out_for_delivery", orders[0].Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newOrderFixture()

		_, _, err := f.service.ListCustomerOrders(ctx, f.customer, OrderListFilter{Status: "lost"})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

// ============================================
// UpdateShippingAddress Tests
// ============================================

func TestOrderService_UpdateShippingAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("before shipping", func(t *testing.T) {
		f := newOrderFixture()
		o := newTestOrder(t, f.customer, order.StatusPacked)
		addressID := uuid.New()
		f.addresses.On("FindShippingForCustomer", ctx, f.customer, addressID).Return(&identity.ShippingAddress{}, nil)
		f.orders.On("FindForCustomer", ctx, f.customer, o.ID).Return(o, nil)
		f.orders.On("Save", ctx, o).Return(nil)

		resp, err := f.service.UpdateShippingAddress(ctx, f.customer, o.ID, addressID)
		require.NoError(t, err)
		assert.Equal(t, addressID, *resp.ShippingAddressID)
	})

	t.Run("blocked after shipping", func(t *testing.T) {
		f := newOrderFixture()
		o := newTestOrder(t, f.customer, order.StatusShipped)
		addressID := uuid.New()
		f.addresses.On("FindShippingForCustomer", ctx, f.customer, addressID).Return(&identity.ShippingAddress{}, nil)
		f.orders.On("FindForCustomer", ctx, f.customer, o.ID).Return(o, nil)

		_, err := f.service.UpdateShippingAddress(ctx, f.customer, o.ID, addressID)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("address of another customer", func(t *testing.T) {
		f := newOrderFixture()
		addressID := uuid.New()
		f.addresses.On("FindShippingForCustomer", ctx, f.customer, addressID).Return(nil, shared.ErrNotFound)

		_, err := f.service.UpdateShippingAddress(ctx, f.customer, uuid.New(), addressID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		f.orders.AssertNotCalled(t, "FindForCustomer", mock.Anything, mock.Anything, mock.Anything)
	})
}

// ============================================
// CancelOrder Tests
// ============================================

func TestOrderService_CancelOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("restores stock and voids the pending payment", func(t *testing.T) {
		f := newOrderFixture()
		o := newTestOrder(t, f.customer, order.StatusConfirmed)
		p := payment.NewPendingPayment(o)
		f.orders.On("FindForCustomer", ctx, f.customer, o.ID).Return(o, nil)
		f.orders.On("Save", ctx, o).Return(nil)
		f.products.On("AdjustStock", ctx, o.Items[0].ProductID, 2).Return(nil).Once()
		f.payments.On("FindByOrderID", ctx, o.ID).Return(p, nil)
		f.payments.On("Save", ctx, p).Return(nil)
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			return len(events) == 1 && events[0].EventType() == order.EventTypeOrderStatusChanged
		})).Return(nil)

		resp, err := f.service.CancelOrder(ctx, f.customer, o.ID)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, payment.StatusFailed, p.Status)
		f.products.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("shipped orders cannot be cancelled by the customer", func(t *testing.T) {
		f := newOrderFixture()
		o := newTestOrder(t, f.customer, order.StatusShipped)
		f.orders.On("FindForCustomer", ctx, f.customer, o.ID).Return(o, nil)

		_, err := f.service.CancelOrder(ctx, f.customer, o.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		f.products.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already cancelled", func(t *testing.T) {
		f := newOrderFixture()
		o := newTestOrder(t, f.customer, order.StatusCancelled)
		f.orders.On("FindForCustomer", ctx, f.customer, o.ID).Return(o, nil)

		_, err := f.service.CancelOrder(ctx, f.customer, o.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}
