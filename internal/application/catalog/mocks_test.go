package catalog

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/audit"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
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

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindRelated(ctx context.Context, product *catalog.Product, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, product, limit)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) FindVariantByID(ctx context.Context, id uuid.UUID) (*catalog.ProductVariant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductVariant), args.Error(1)
}

func (m *MockProductRepository) ExistsVariantSKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) SaveVariant(ctx context.Context, variant *catalog.ProductVariant) error {
	return m.Called(ctx, variant).Error(0)
}

func (m *MockProductRepository) SaveImage(ctx context.Context, image *catalog.ProductImage) error {
	return m.Called(ctx, image).Error(0)
}

func (m *MockProductRepository) SaveGroup(ctx context.Context, group *catalog.ProductGroup) error {
	return m.Called(ctx, group).Error(0)
}

func (m *MockProductRepository) FindGroupSiblings(ctx context.Context, productID uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateStock(ctx context.Context, productID uuid.UUID, stock int) error {
	return m.Called(ctx, productID, stock).Error(0)
}

func (m *MockProductRepository) BulkUpdateStock(ctx context.Context, updates []catalog.StockUpdate) (int64, error) {
	args := m.Called(ctx, updates)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, productID uuid.UUID, delta int) error {
	return m.Called(ctx, productID, delta).Error(0)
}

func (m *MockProductRepository) AdjustVariantStock(ctx context.Context, variantID uuid.UUID, delta int) error {
	return m.Called(ctx, variantID, delta).Error(0)
}

func (m *MockProductRepository) IncrementBuyCount(ctx context.Context, productID uuid.UUID, n int) error {
	return m.Called(ctx, productID, n).Error(0)
}

func (m *MockProductRepository) UpdateRating(ctx context.Context, productID uuid.UUID, rating decimal.Decimal) error {
	return m.Called(ctx, productID, rating).Error(0)
}

func (m *MockProductRepository) CountStockLevels(ctx context.Context, lowThreshold int) (*catalog.StockLevels, error) {
	args := m.Called(ctx, lowThreshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.StockLevels), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context, lowThreshold, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, lowThreshold, limit)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindOutOfStock(ctx context.Context, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

var _ catalog.ProductRepository = (*MockProductRepository)(nil)

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) CountProducts(ctx context.Context) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

var _ catalog.CategoryRepository = (*MockCategoryRepository)(nil)

// MockProductCache is a mock implementation of ProductCache
type MockProductCache struct {
	mock.Mock
}

func (m *MockProductCache) Get(ctx context.Context, slug string) (*ProductDetailResponse, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProductDetailResponse), args.Error(1)
}

func (m *MockProductCache) Set(ctx context.Context, slug string, detail *ProductDetailResponse) error {
	return m.Called(ctx, slug, detail).Error(0)
}

func (m *MockProductCache) Invalidate(ctx context.Context, slugs ...string) error {
	return m.Called(ctx, slugs).Error(0)
}

var _ ProductCache = (*MockProductCache)(nil)

// MockImageStorage is a mock implementation of ImageStorage
type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) Upload(ctx context.Context, storageKey string, body io.Reader, contentType string) error {
	return m.Called(ctx, storageKey, body, contentType).Error(0)
}

func (m *MockImageStorage) DeleteObject(ctx context.Context, storageKey string) error {
	return m.Called(ctx, storageKey).Error(0)
}

func (m *MockImageStorage) PublicURL(storageKey string) string {
	return m.Called(storageKey).String(0)
}

var _ ImageStorage = (*MockImageStorage)(nil)

// MockAuditLog is a mock implementation of audit.Log
type MockAuditLog struct {
	mock.Mock
}

func (m *MockAuditLog) Record(ctx context.Context, entry audit.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockAuditLog) Recent(ctx context.Context, q audit.Query) ([]audit.Entry, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]audit.Entry), args.Error(1)
}

var _ audit.Log = (*MockAuditLog)(nil)
