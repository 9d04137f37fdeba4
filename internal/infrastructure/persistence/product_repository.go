package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/renztrending/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	errProductNotFound = shared.NewNotFoundError("Product not found")
	errVariantNotFound = shared.NewNotFoundError("Variant not found")
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// withDetails preloads everything the product page renders
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Color").
		Preload("Size").
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("size ASC") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("is_primary DESC, created_at ASC") })
}

// withCard preloads what a product card renders
func withCard(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("is_primary DESC, created_at ASC") })
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := withDetails(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errProductNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a product by its URL slug
func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := withDetails(r.db.WithContext(ctx)).First(&model, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errProductNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := withCard(r.db.WithContext(ctx)).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// FindAll finds a page of products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
	query = applyPage(applySort(query, filter, ProductSortFields, "created_at"), filter)

	var rows []models.ProductModel
	if err := withCard(query).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindRelated returns random products from the same category
func (r *GormProductRepository) FindRelated(ctx context.Context, product *catalog.Product, limit int) ([]catalog.Product, error) {
	if product.CategoryID == nil || limit <= 0 {
		return []catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := withCard(r.db.WithContext(ctx)).
		Where("category_id = ? AND id <> ?", *product.CategoryID, product.ID).
		Order("RANDOM()").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// ExistsBySlug checks if a slug is taken, optionally ignoring one product
func (r *GormProductRepository) ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a product row; children are saved separately
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError(shared.CodeAlreadyExists, "A product with this name already exists")
		}
		return err
	}
	return nil
}

// FindVariantByID finds a variant by its ID
func (r *GormProductRepository) FindVariantByID(ctx context.Context, id uuid.UUID) (*catalog.ProductVariant, error) {
	var model models.ProductVariantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errVariantNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsVariantSKU checks if a variant SKU is taken
func (r *GormProductRepository) ExistsVariantSKU(ctx context.Context, sku string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductVariantModel{}).
		Where("sku = ?", sku).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveVariant creates or updates a variant
func (r *GormProductRepository) SaveVariant(ctx context.Context, variant *catalog.ProductVariant) error {
	if err := r.db.WithContext(ctx).Save(models.ProductVariantModelFromDomain(variant)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError(shared.CodeAlreadyExists, "Variant SKU already exists")
		}
		return err
	}
	return nil
}

// SaveImage stores an image; a primary image demotes the product's other images
func (r *GormProductRepository) SaveImage(ctx context.Context, image *catalog.ProductImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if image.IsPrimary {
			if err := tx.Model(&models.ProductImageModel{}).
				Where("product_id = ? AND id <> ?", image.ProductID, image.ID).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(models.ProductImageModelFromDomain(image)).Error
	})
}

// SaveGroup stores a group and its members
func (r *GormProductRepository) SaveGroup(ctx context.Context, group *catalog.ProductGroup) error {
	model := models.ProductGroupModelFromDomain(group)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.ProductGroupMemberModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&model.Members).Error
	})
}

// FindGroupSiblings returns the other products that share a group with productID
func (r *GormProductRepository) FindGroupSiblings(ctx context.Context, productID uuid.UUID) ([]catalog.Product, error) {
	groups := r.db.Model(&models.ProductGroupMemberModel{}).
		Select("group_id").
		Where("product_id = ?", productID)
	members := r.db.Model(&models.ProductGroupMemberModel{}).
		Select("product_id").
		Where("group_id IN (?)", groups)

	var rows []models.ProductModel
	if err := withCard(r.db.WithContext(ctx)).
		Where("id IN (?) AND id <> ?", members, productID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// UpdateStock sets the absolute stock of a product
func (r *GormProductRepository) UpdateStock(ctx context.Context, productID uuid.UUID, stock int) error {
	result := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("id = ?", productID).
		Update("stock", stock)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errProductNotFound
	}
	return nil
}

// BulkUpdateStock applies all updates in one transaction and returns how many
// products changed. Unknown product IDs are skipped.
func (r *GormProductRepository) BulkUpdateStock(ctx context.Context, updates []catalog.StockUpdate) (int64, error) {
	var updated int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			result := tx.Model(&models.ProductModel{}).
				Where("id = ?", u.ProductID).
				Update("stock", u.Stock)
			if result.Error != nil {
				return result.Error
			}
			updated += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// AdjustStock adds delta to the product stock. A decrement only applies
// while enough stock remains, so concurrent checkouts cannot oversell.
func (r *GormProductRepository) AdjustStock(ctx context.Context, productID uuid.UUID, delta int) error {
	return r.adjust(ctx, &models.ProductModel{}, productID, delta, errProductNotFound)
}

// AdjustVariantStock adds delta to the variant stock with the same guard as AdjustStock
func (r *GormProductRepository) AdjustVariantStock(ctx context.Context, variantID uuid.UUID, delta int) error {
	return r.adjust(ctx, &models.ProductVariantModel{}, variantID, delta, errVariantNotFound)
}

func (r *GormProductRepository) adjust(ctx context.Context, model interface{}, id uuid.UUID, delta int, notFound error) error {
	db := r.db.WithContext(ctx)
	query := db.Model(model).Where("id = ?", id)
	if delta < 0 {
		query = query.Where("stock >= ?", -delta)
	}
	result := query.Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound
	}
	return shared.ErrInsufficientStock
}

// IncrementBuyCount adds n to the product's sales counter
func (r *GormProductRepository) IncrementBuyCount(ctx context.Context, productID uuid.UUID, n int) error {
	return r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("id = ?", productID).
		Update("buy_count", gorm.Expr("buy_count + ?", n)).Error
}

// UpdateRating stores the product's average review rating
func (r *GormProductRepository) UpdateRating(ctx context.Context, productID uuid.UUID, rating decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("id = ?", productID).
		Update("rating", rating)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errProductNotFound
	}
	return nil
}

// CountStockLevels counts all, low-stock and out-of-stock products
func (r *GormProductRepository) CountStockLevels(ctx context.Context, lowThreshold int) (*catalog.StockLevels, error) {
	var row struct {
		TotalCount int64
		LowCount   int64
		OutCount   int64
	}
	if err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Select(
			"COUNT(*) AS total_count, "+
				"COALESCE(SUM(CASE WHEN stock > 0 AND stock < ? THEN 1 ELSE 0 END), 0) AS low_count, "+
				"COALESCE(SUM(CASE WHEN stock <= 0 THEN 1 ELSE 0 END), 0) AS out_count",
			lowThreshold,
		).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	return &catalog.StockLevels{TotalProducts: row.TotalCount, LowStock: row.LowCount, OutOfStock: row.OutCount}, nil
}

// FindLowStock lists in-stock products below the threshold, scarcest first
func (r *GormProductRepository) FindLowStock(ctx context.Context, lowThreshold, limit int) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := withCard(r.db.WithContext(ctx)).
		Where("stock > 0 AND stock < ?", lowThreshold).
		Order("stock ASC, name ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// FindOutOfStock lists sold-out products, most recently changed first
func (r *GormProductRepository) FindOutOfStock(ctx context.Context, limit int) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := withCard(r.db.WithContext(ctx)).
		Where("stock <= 0").
		Order("updated_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// applyFilter applies search and the recognised filter keys
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(
			`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(brand) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	}
	for key, value := range filter.Filters {
		switch key {
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "min_price":
			query = query.Where("selling_price >= ?", value)
		case "max_price":
			query = query.Where("selling_price <= ?", value)
		case "in_stock":
			if value == true {
				query = query.Where("stock > 0")
			}
		}
	}
	return query
}

func toProducts(rows []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
