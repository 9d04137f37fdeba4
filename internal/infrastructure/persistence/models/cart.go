package models

import (
	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/cart"
)

// CartItemModel is the persistence model for a cart line.
// A customer holds at most one line per (product, size).
type CartItemModel struct {
	BaseModel
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_cart_line,priority:1"`
	ProductID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_cart_line,priority:2"`
	Size       string     `gorm:"type:varchar(5);not null;uniqueIndex:idx_cart_line,priority:3"`
	VariantID  *uuid.UUID `gorm:"type:uuid"`
	Quantity   int        `gorm:"not null"`

	Product *ProductModel        `gorm:"foreignKey:ProductID"`
	Variant *ProductVariantModel `gorm:"foreignKey:VariantID"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return "cart_items"
}

// ToDomain converts the persistence model to a domain CartItem
func (m *CartItemModel) ToDomain() *cart.CartItem {
	item := &cart.CartItem{
		BaseEntity: m.BaseModel.Entity(),
		CustomerID: m.CustomerID,
		ProductID:  m.ProductID,
		VariantID:  m.VariantID,
		Size:       m.Size,
		Quantity:   m.Quantity,
	}
	if m.Product != nil {
		item.Product = m.Product.ToDomain()
	}
	if m.Variant != nil {
		item.Variant = m.Variant.ToDomain()
	}
	return item
}

// CartItemModelFromDomain creates a new persistence model from a domain CartItem
func CartItemModelFromDomain(i *cart.CartItem) *CartItemModel {
	m := &CartItemModel{
		CustomerID: i.CustomerID,
		ProductID:  i.ProductID,
		Size:       i.Size,
		VariantID:  i.VariantID,
		Quantity:   i.Quantity,
	}
	m.fromEntity(i.BaseEntity)
	return m
}
