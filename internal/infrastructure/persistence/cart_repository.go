package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/cart"
	"github.com/renztrending/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByCustomer returns the customer's lines, oldest first, with product and variant preloaded
func (r *GormCartRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]cart.CartItem, error) {
	var rows []models.CartItemModel
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Images", func(db *gorm.DB) *gorm.DB { return db.Order("is_primary DESC, created_at ASC") }).
		Preload("Variant").
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]cart.CartItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, nil
}

// FindForCustomer finds one of the customer's lines
func (r *GormCartRepository) FindForCustomer(ctx context.Context, customerID, itemID uuid.UUID) (*cart.CartItem, error) {
	var model models.CartItemModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", itemID, customerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrItemNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLine finds the customer's line for a (product, size) pair
func (r *GormCartRepository) FindLine(ctx context.Context, customerID, productID uuid.UUID, size string) (*cart.CartItem, error) {
	var model models.CartItemModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ? AND size = ?", customerID, productID, cart.NormalizeSize(size)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrItemNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Merge inserts the line or adds its quantity to the existing (product, size)
// line in a single statement. The increment only applies while the merged
// quantity stays within maxQuantity and the line holds the same variant; the
// variant of an existing line is never rewritten.
func (r *GormCartRepository) Merge(ctx context.Context, item *cart.CartItem, maxQuantity int) (bool, error) {
	model := models.CartItemModelFromDomain(item)
	result := r.db.WithContext(ctx).
		Omit("Product", "Variant").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "customer_id"}, {Name: "product_id"}, {Name: "size"}},
			DoUpdates: clause.Set{
				{Column: clause.Column{Name: "quantity"}, Value: gorm.Expr("cart_items.quantity + excluded.quantity")},
				{Column: clause.Column{Name: "updated_at"}, Value: gorm.Expr("excluded.updated_at")},
			},
			Where: clause.Where{Exprs: []clause.Expression{
				gorm.Expr("cart_items.quantity + excluded.quantity <= ?", maxQuantity),
				gorm.Expr("COALESCE(cart_items.variant_id, ?) = COALESCE(excluded.variant_id, ?)", uuid.Nil, uuid.Nil),
			}},
		}).
		Create(model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateQuantity overwrites the quantity of one of the customer's lines
func (r *GormCartRepository) UpdateQuantity(ctx context.Context, item *cart.CartItem) error {
	result := r.db.WithContext(ctx).Model(&models.CartItemModel{}).
		Where("id = ? AND customer_id = ?", item.ID, item.CustomerID).
		Update("quantity", item.Quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

// Delete removes one of the customer's lines
func (r *GormCartRepository) Delete(ctx context.Context, customerID, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", itemID, customerID).
		Delete(&models.CartItemModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

// Clear empties the customer's cart
func (r *GormCartRepository) Clear(ctx context.Context, customerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&models.CartItemModel{}).Error
}

// DeleteLines removes the listed lines of the customer
func (r *GormCartRepository) DeleteLines(ctx context.Context, customerID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("customer_id = ? AND id IN ?", customerID, ids).
		Delete(&models.CartItemModel{}).Error
}

// Ensure GormCartRepository implements CartRepository
var _ cart.CartRepository = (*GormCartRepository)(nil)
