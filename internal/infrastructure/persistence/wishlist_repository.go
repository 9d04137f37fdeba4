package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/engagement"
	"github.com/renztrending/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWishlistRepository implements WishlistRepository using GORM
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewGormWishlistRepository creates a new GormWishlistRepository
func NewGormWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// Add saves the product; false means it was already on the wishlist
func (r *GormWishlistRepository) Add(ctx context.Context, item *engagement.WishlistItem) (bool, error) {
	result := r.db.WithContext(ctx).
		Omit("Product").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(models.WishlistItemModelFromDomain(item))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Remove deletes the entry; false means there was nothing to delete
func (r *GormWishlistRepository) Remove(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Delete(&models.WishlistItemModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists checks whether the product is on the customer's wishlist
func (r *GormWishlistRepository) Exists(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WishlistItemModel{}).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Count(&count).Error
	return count > 0, err
}

// FindByCustomer returns the wishlist, newest first, with products preloaded
func (r *GormWishlistRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]engagement.WishlistItem, error) {
	var rows []models.WishlistItemModel
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Images", func(db *gorm.DB) *gorm.DB { return db.Order("is_primary DESC, created_at ASC") }).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]engagement.WishlistItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, nil
}

// Ensure GormWishlistRepository implements WishlistRepository
var _ engagement.WishlistRepository = (*GormWishlistRepository)(nil)
