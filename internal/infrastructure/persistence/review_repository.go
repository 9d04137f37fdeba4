package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/engagement"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/renztrending/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create inserts the review. The (product, customer) unique index turns a
// concurrent second review into ErrAlreadyReviewed.
func (r *GormReviewRepository) Create(ctx context.Context, review *engagement.Review) error {
	if err := r.db.WithContext(ctx).Omit("Customer").Create(models.ReviewModelFromDomain(review)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return engagement.ErrAlreadyReviewed
		}
		return err
	}
	return nil
}

// FindByProduct returns a page of the product's reviews with author names
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]engagement.Review, error) {
	var rows []models.ReviewModel
	query := r.db.WithContext(ctx).
		Preload("Customer").
		Where("product_id = ?", productID)
	query = applySort(query, filter, ReviewSortFields, "created_at")
	query = applyPage(query, filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	reviews := make([]engagement.Review, len(rows))
	for i := range rows {
		reviews[i] = *rows[i].ToDomain()
	}
	return reviews, nil
}

// CountByProduct counts the product's reviews
func (r *GormReviewRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ReviewModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}

// AverageRating is zero for a product with no reviews
func (r *GormReviewRepository) AverageRating(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	var avg decimal.NullDecimal
	if err := r.db.WithContext(ctx).Model(&models.ReviewModel{}).
		Select("AVG(rating)").
		Where("product_id = ?", productID).
		Scan(&avg).Error; err != nil {
		return decimal.Zero, err
	}
	if !avg.Valid {
		return decimal.Zero, nil
	}
	return avg.Decimal, nil
}

// Ensure GormReviewRepository implements ReviewRepository
var _ engagement.ReviewRepository = (*GormReviewRepository)(nil)
