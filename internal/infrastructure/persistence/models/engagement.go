package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/engagement"
)

// ReviewModel is the persistence model for a product review
type ReviewModel struct {
	BaseModel
	ProductID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_product_customer,priority:1"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_product_customer,priority:2"`
	Rating     int       `gorm:"not null"`
	Comment    string    `gorm:"type:text"`

	Customer *CustomerModel `gorm:"foreignKey:CustomerID"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review
func (m *ReviewModel) ToDomain() *engagement.Review {
	r := &engagement.Review{
		BaseEntity: m.BaseModel.Entity(),
		CustomerID: m.CustomerID,
		ProductID:  m.ProductID,
		Rating:     m.Rating,
		Comment:    m.Comment,
	}
	if m.Customer != nil {
		r.AuthorName = m.Customer.ToDomain().FullName()
	}
	return r
}

// ReviewModelFromDomain creates a new persistence model from a domain Review
func ReviewModelFromDomain(r *engagement.Review) *ReviewModel {
	m := &ReviewModel{
		ProductID:  r.ProductID,
		CustomerID: r.CustomerID,
		Rating:     r.Rating,
		Comment:    r.Comment,
	}
	m.fromEntity(r.BaseEntity)
	return m
}

// WishlistItemModel is the persistence model for a wishlist entry
type WishlistItemModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_customer_product,priority:1"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_customer_product,priority:2"`
	CreatedAt  time.Time `gorm:"not null"`

	Product *ProductModel `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (WishlistItemModel) TableName() string {
	return "wishlist_items"
}

// ToDomain converts the persistence model to a domain WishlistItem
func (m *WishlistItemModel) ToDomain() *engagement.WishlistItem {
	w := &engagement.WishlistItem{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		ProductID:  m.ProductID,
		CreatedAt:  m.CreatedAt,
	}
	if m.Product != nil {
		w.Product = m.Product.ToDomain()
	}
	return w
}

// WishlistItemModelFromDomain creates a new persistence model from a domain WishlistItem
func WishlistItemModelFromDomain(w *engagement.WishlistItem) *WishlistItemModel {
	return &WishlistItemModel{
		ID:         w.ID,
		CustomerID: w.CustomerID,
		ProductID:  w.ProductID,
		CreatedAt:  w.CreatedAt,
	}
}

// SubscriptionModel is the persistence model for a newsletter subscription
type SubscriptionModel struct {
	BaseModel
	Email       string `gorm:"type:varchar(254);not null;uniqueIndex"`
	IsActive    bool   `gorm:"not null;index"`
	ConfirmedAt *time.Time
}

// TableName returns the table name for GORM
func (SubscriptionModel) TableName() string {
	return "newsletter_subscriptions"
}

// ToDomain converts the persistence model to a domain Subscription
func (m *SubscriptionModel) ToDomain() *engagement.Subscription {
	return &engagement.Subscription{
		BaseEntity:  m.BaseModel.Entity(),
		Email:       m.Email,
		IsActive:    m.IsActive,
		ConfirmedAt: m.ConfirmedAt,
	}
}

// SubscriptionModelFromDomain creates a new persistence model from a domain Subscription
func SubscriptionModelFromDomain(s *engagement.Subscription) *SubscriptionModel {
	m := &SubscriptionModel{Email: s.Email, IsActive: s.IsActive, ConfirmedAt: s.ConfirmedAt}
	m.fromEntity(s.BaseEntity)
	return m
}
