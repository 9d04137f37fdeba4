package engagement

import (
	"context"

	"github.com/google/uuid"
	catalogapp "github.com/renztrending/backend/internal/application/catalog"
	"github.com/renztrending/backend/internal/application/notification"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/engagement"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockReviewRepository is a mock implementation of ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *engagement.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]engagement.Review, error) {
	args := m.Called(ctx, productID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engagement.Review), args.Error(1)
}

func (m *MockReviewRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) AverageRating(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ engagement.ReviewRepository = (*MockReviewRepository)(nil)

// MockWishlistRepository is a mock implementation of WishlistRepository
type MockWishlistRepository struct {
	mock.Mock
}

func (m *MockWishlistRepository) Add(ctx context.Context, item *engagement.WishlistItem) (bool, error) {
	args := m.Called(ctx, item)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistRepository) Remove(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, customerID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistRepository) Exists(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, customerID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]engagement.WishlistItem, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engagement.WishlistItem), args.Error(1)
}

var _ engagement.WishlistRepository = (*MockWishlistRepository)(nil)

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByEmail(ctx context.Context, email string) (*engagement.Subscription, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]engagement.Subscription, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engagement.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]engagement.Subscription, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engagement.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *engagement.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockSubscriptionRepository) Save(ctx context.Context, sub *engagement.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

var _ engagement.SubscriptionRepository = (*MockSubscriptionRepository)(nil)

// MockProductRepository mocks the product lookups engagement needs
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

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateRating(ctx context.Context, productID uuid.UUID, rating decimal.Decimal) error {
	return m.Called(ctx, productID, rating).Error(0)
}

// MockProductCache is a mock implementation of ProductCache
type MockProductCache struct {
	mock.Mock
}

func (m *MockProductCache) Get(ctx context.Context, slug string) (*catalogapp.ProductDetailResponse, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductDetailResponse), args.Error(1)
}

func (m *MockProductCache) Set(ctx context.Context, slug string, detail *catalogapp.ProductDetailResponse) error {
	return m.Called(ctx, slug, detail).Error(0)
}

func (m *MockProductCache) Invalidate(ctx context.Context, slugs ...string) error {
	return m.Called(ctx, slugs).Error(0)
}

var _ catalogapp.ProductCache = (*MockProductCache)(nil)

// recordingQueue collects queued messages
type recordingQueue struct {
	messages []notification.Message
}

func (q *recordingQueue) Enqueue(msg notification.Message) { q.messages = append(q.messages, msg) }
