package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockUpdate sets the stock of one product
type StockUpdate struct {
	ProductID uuid.UUID
	Stock     int
}

// StockLevels counts products by stock band
type StockLevels struct {
	TotalProducts int64
	LowStock      int64
	OutOfStock    int64
}

// ProductRepository defines persistence for products and their children.
// Recognised filter keys: "category_id" (uuid.UUID), "min_price" and
// "max_price" (decimal.Decimal).
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindRelated returns up to limit random products sharing the product's category
	FindRelated(ctx context.Context, product *Product, limit int) ([]Product, error)
	ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, product *Product) error

	FindVariantByID(ctx context.Context, id uuid.UUID) (*ProductVariant, error)
	ExistsVariantSKU(ctx context.Context, sku string) (bool, error)
	SaveVariant(ctx context.Context, variant *ProductVariant) error

	// SaveImage stores an image; a primary image demotes the product's other images
	SaveImage(ctx context.Context, image *ProductImage) error

	SaveGroup(ctx context.Context, group *ProductGroup) error
	// FindGroupSiblings returns the other products that share a group with productID
	FindGroupSiblings(ctx context.Context, productID uuid.UUID) ([]Product, error)

	UpdateStock(ctx context.Context, productID uuid.UUID, stock int) error
	// BulkUpdateStock applies all updates and returns how many products changed
	BulkUpdateStock(ctx context.Context, updates []StockUpdate) (int64, error)
	// AdjustStock adds delta to the stock, failing with ErrInsufficientStock
	// instead of letting stock go negative
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int) error
	AdjustVariantStock(ctx context.Context, variantID uuid.UUID, delta int) error
	IncrementBuyCount(ctx context.Context, productID uuid.UUID, n int) error
	UpdateRating(ctx context.Context, productID uuid.UUID, rating decimal.Decimal) error

	CountStockLevels(ctx context.Context, lowThreshold int) (*StockLevels, error)
	FindLowStock(ctx context.Context, lowThreshold, limit int) ([]Product, error)
	FindOutOfStock(ctx context.Context, limit int) ([]Product, error)
}

// CategoryRepository defines persistence for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Save(ctx context.Context, category *Category) error
	// CountProducts returns product counts keyed by category ID
	CountProducts(ctx context.Context) (map[uuid.UUID]int64, error)
}

// AttributeRepository defines persistence for colors and sizes
type AttributeRepository interface {
	ListColors(ctx context.Context) ([]Color, error)
	SaveColor(ctx context.Context, color *Color) error
	ListSizes(ctx context.Context) ([]Size, error)
	SaveSize(ctx context.Context, size *Size) error
}
