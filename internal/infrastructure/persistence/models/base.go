package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/shared"
)

// BaseModel is embedded by every table keyed on a UUID
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (m *BaseModel) Entity() shared.BaseEntity {
	return shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

func (m *BaseModel) fromEntity(e shared.BaseEntity) {
	m.ID, m.CreatedAt, m.UpdatedAt = e.ID, e.CreatedAt, e.UpdatedAt
}

// AggregateModel adds the optimistic-lock version checked by guarded updates
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

func (m *AggregateModel) Aggregate() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{BaseEntity: m.Entity(), Version: m.Version}
}

func (m *AggregateModel) fromAggregate(a shared.BaseAggregateRoot) {
	m.fromEntity(a.BaseEntity)
	m.Version = a.Version
}

// All lists every table in foreign-key order, for AutoMigrate in tests
func All() []any {
	return []any{
		// catalog
		&CategoryModel{}, &ColorModel{}, &SizeModel{},
		&ProductModel{}, &ProductVariantModel{}, &ProductImageModel{},
		&ProductGroupModel{}, &ProductGroupMemberModel{},
		// customers
		&CustomerModel{}, &ShippingAddressModel{}, &BillingAddressModel{},
		// checkout
		&CartItemModel{}, &OrderModel{}, &OrderItemModel{}, &PaymentModel{}, &PaymentIntentModel{},
		// engagement
		&ReviewModel{}, &WishlistItemModel{}, &SubscriptionModel{},
	}
}
