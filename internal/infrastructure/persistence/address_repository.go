package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/identity"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/renztrending/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var errAddressNotFound = shared.NewNotFoundError("Address not found")

// GormAddressRepository implements AddressRepository using GORM.
// Every lookup is scoped to the owning customer.
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindShippingForCustomer finds one of the customer's shipping addresses
func (r *GormAddressRepository) FindShippingForCustomer(ctx context.Context, customerID, id uuid.UUID) (*identity.ShippingAddress, error) {
	var model models.ShippingAddressModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errAddressNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListShipping lists the customer's shipping addresses, newest first
func (r *GormAddressRepository) ListShipping(ctx context.Context, customerID uuid.UUID) ([]identity.ShippingAddress, error) {
	var rows []models.ShippingAddressModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	addresses := make([]identity.ShippingAddress, len(rows))
	for i := range rows {
		addresses[i] = *rows[i].ToDomain()
	}
	return addresses, nil
}

// SaveShipping creates or updates a shipping address
func (r *GormAddressRepository) SaveShipping(ctx context.Context, address *identity.ShippingAddress) error {
	return r.db.WithContext(ctx).Save(models.ShippingAddressModelFromDomain(address)).Error
}

// DeleteShipping deletes one of the customer's shipping addresses
func (r *GormAddressRepository) DeleteShipping(ctx context.Context, customerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", id, customerID).
		Delete(&models.ShippingAddressModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errAddressNotFound
	}
	return nil
}

// FindBillingForCustomer finds one of the customer's billing addresses
func (r *GormAddressRepository) FindBillingForCustomer(ctx context.Context, customerID, id uuid.UUID) (*identity.BillingAddress, error) {
	var model models.BillingAddressModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errAddressNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListBilling lists the customer's billing addresses, default first
func (r *GormAddressRepository) ListBilling(ctx context.Context, customerID uuid.UUID) ([]identity.BillingAddress, error) {
	var rows []models.BillingAddressModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("is_default DESC, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	addresses := make([]identity.BillingAddress, len(rows))
	for i := range rows {
		addresses[i] = *rows[i].ToDomain()
	}
	return addresses, nil
}

// SaveBilling stores the address; a default address clears the owner's other defaults
func (r *GormAddressRepository) SaveBilling(ctx context.Context, address *identity.BillingAddress) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := tx.Model(&models.BillingAddressModel{}).
				Where("customer_id = ? AND id <> ? AND is_default = ?", address.CustomerID, address.ID, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(models.BillingAddressModelFromDomain(address)).Error
	})
}

// DeleteBilling deletes one of the customer's billing addresses
func (r *GormAddressRepository) DeleteBilling(ctx context.Context, customerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", id, customerID).
		Delete(&models.BillingAddressModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errAddressNotFound
	}
	return nil
}

// Ensure GormAddressRepository implements AddressRepository
var _ identity.AddressRepository = (*GormAddressRepository)(nil)
