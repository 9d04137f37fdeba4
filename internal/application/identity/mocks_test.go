package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/identity"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIdentifier(ctx context.Context, identifier string) (*identity.Customer, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.Customer, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]identity.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *identity.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

var _ identity.CustomerRepository = (*MockCustomerRepository)(nil)

// MockAddressRepository is a mock implementation of AddressRepository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) FindShippingForCustomer(ctx context.Context, customerID, id uuid.UUID) (*identity.ShippingAddress, error) {
	args := m.Called(ctx, customerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.ShippingAddress), args.Error(1)
}

func (m *MockAddressRepository) ListShipping(ctx context.Context, customerID uuid.UUID) ([]identity.ShippingAddress, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]identity.ShippingAddress), args.Error(1)
}

func (m *MockAddressRepository) SaveShipping(ctx context.Context, address *identity.ShippingAddress) error {
	return m.Called(ctx, address).Error(0)
}

func (m *MockAddressRepository) DeleteShipping(ctx context.Context, customerID, id uuid.UUID) error {
	return m.Called(ctx, customerID, id).Error(0)
}

func (m *MockAddressRepository) FindBillingForCustomer(ctx context.Context, customerID, id uuid.UUID) (*identity.BillingAddress, error) {
	args := m.Called(ctx, customerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.BillingAddress), args.Error(1)
}

func (m *MockAddressRepository) ListBilling(ctx context.Context, customerID uuid.UUID) ([]identity.BillingAddress, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]identity.BillingAddress), args.Error(1)
}

func (m *MockAddressRepository) SaveBilling(ctx context.Context, address *identity.BillingAddress) error {
	return m.Called(ctx, address).Error(0)
}

func (m *MockAddressRepository) DeleteBilling(ctx context.Context, customerID, id uuid.UUID) error {
	return m.Called(ctx, customerID, id).Error(0)
}

var _ identity.AddressRepository = (*MockAddressRepository)(nil)

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

var _ shared.EventPublisher = (*MockEventPublisher)(nil)
