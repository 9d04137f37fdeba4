package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/engagement"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/renztrending/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSubscriptionRepository implements SubscriptionRepository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByEmail finds a subscription by its normalized address
func (r *GormSubscriptionRepository) FindByEmail(ctx context.Context, email string) (*engagement.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).First(&model, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, engagement.ErrEmailNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByIDs returns the active subscriptions among ids
func (r *GormSubscriptionRepository) FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]engagement.Subscription, error) {
	if len(ids) == 0 {
		return []engagement.Subscription{}, nil
	}
	var rows []models.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Order("email ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return subscriptionsToDomain(rows), nil
}

// FindAll returns a page of subscriptions
func (r *GormSubscriptionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]engagement.Subscription, error) {
	var rows []models.SubscriptionModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SubscriptionModel{}), filter)
	query = applySort(query, filter, SubscriptionSortFields, "created_at")
	query = applyPage(query, filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return subscriptionsToDomain(rows), nil
}

// Count counts subscriptions matching the filter
func (r *GormSubscriptionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.SubscriptionModel{}), filter).Count(&count).Error
	return count, err
}

// Create inserts a subscription; a duplicate email yields ErrAlreadyExists
func (r *GormSubscriptionRepository) Create(ctx context.Context, sub *engagement.Subscription) error {
	if err := r.db.WithContext(ctx).Create(models.SubscriptionModelFromDomain(sub)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save updates the subscription state
func (r *GormSubscriptionRepository) Save(ctx context.Context, sub *engagement.Subscription) error {
	result := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).
		Where("id = ?", sub.ID).
		Updates(map[string]interface{}{
			"is_active":    sub.IsActive,
			"confirmed_at": sub.ConfirmedAt,
			"updated_at":   sub.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return engagement.ErrEmailNotFound
	}
	return nil
}

func (r *GormSubscriptionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where(`LOWER(email) LIKE ? ESCAPE '\'`, likePattern(filter.Search))
	}
	if active, ok := filter.Filters["is_active"].(bool); ok {
		query = query.Where("is_active = ?", active)
	}
	return query
}

func subscriptionsToDomain(rows []models.SubscriptionModel) []engagement.Subscription {
	subs := make([]engagement.Subscription, len(rows))
	for i := range rows {
		subs[i] = *rows[i].ToDomain()
	}
	return subs
}

// Ensure GormSubscriptionRepository implements SubscriptionRepository
var _ engagement.SubscriptionRepository = (*GormSubscriptionRepository)(nil)
