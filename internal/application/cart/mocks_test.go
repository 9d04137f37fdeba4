package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/cart"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/stretchr/testify/mock"
)

// MockCartRepository is a mock implementation of CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]cart.CartItem, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]cart.CartItem), args.Error(1)
}

func (m *MockCartRepository) FindForCustomer(ctx context.Context, customerID, itemID uuid.UUID) (*cart.CartItem, error) {
	args := m.Called(ctx, customerID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartRepository) FindLine(ctx context.Context, customerID, productID uuid.UUID, size string) (*cart.CartItem, error) {
	args := m.Called(ctx, customerID, productID, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartRepository) Merge(ctx context.Context, item *cart.CartItem, maxQuantity int) (bool, error) {
	args := m.Called(ctx, item, maxQuantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockCartRepository) UpdateQuantity(ctx context.Context, item *cart.CartItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, customerID, itemID uuid.UUID) error {
	return m.Called(ctx, customerID, itemID).Error(0)
}

func (m *MockCartRepository) Clear(ctx context.Context, customerID uuid.UUID) error {
	return m.Called(ctx, customerID).Error(0)
}

func (m *MockCartRepository) DeleteLines(ctx context.Context, customerID uuid.UUID, ids []uuid.UUID) error {
	return m.Called(ctx, customerID, ids).Error(0)
}

var _ cart.CartRepository = (*MockCartRepository)(nil)

// MockProductRepository mocks the product lookups the cart needs; other
// methods fall through to the nil embedded interface.
type MockProductRepository struct {
	catalog.ProductRepository
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindVariantByID(ctx context.Context, id uuid.UUID) (*catalog.ProductVariant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductVariant), args.Error(1)
}
