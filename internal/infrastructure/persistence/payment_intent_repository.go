package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/payment"
	"github.com/renztrending/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPaymentIntentRepository stores the gateway orders opened at checkout
type GormPaymentIntentRepository struct {
	db *gorm.DB
}

func NewGormPaymentIntentRepository(db *gorm.DB) *GormPaymentIntentRepository {
	return &GormPaymentIntentRepository{db: db}
}

func (r *GormPaymentIntentRepository) Create(ctx context.Context, intent *payment.Intent) error {
	return r.db.WithContext(ctx).Create(models.PaymentIntentModelFromDomain(intent)).Error
}

// FindForCustomer looks the gateway order up within the customer's own intents
func (r *GormPaymentIntentRepository) FindForCustomer(ctx context.Context, customerID uuid.UUID, gatewayOrderID string) (*payment.Intent, error) {
	var model models.PaymentIntentModel
	err := r.db.WithContext(ctx).
		Where("gateway_order_id = ? AND customer_id = ?", gatewayOrderID, customerID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, payment.ErrIntentNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

var _ payment.IntentRepository = (*GormPaymentIntentRepository)(nil)
