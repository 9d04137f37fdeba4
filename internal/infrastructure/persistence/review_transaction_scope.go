package persistence

import (
	"context"

	engagementapp "github.com/renztrending/backend/internal/application/engagement"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/engagement"
	"gorm.io/gorm"
)

// GormReviewScope runs a review insert and the product rating update in one
// GORM transaction
type GormReviewScope struct {
	db *gorm.DB
}

func NewGormReviewScope(db *gorm.DB) *GormReviewScope {
	return &GormReviewScope{db: db}
}

func (s *GormReviewScope) Execute(ctx context.Context, fn func(repos engagementapp.ReviewRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(gormReviewRepositories{tx: tx})
	})
}

type gormReviewRepositories struct {
	tx *gorm.DB
}

func (r gormReviewRepositories) ReviewRepo() engagement.ReviewRepository {
	return NewGormReviewRepository(r.tx)
}

func (r gormReviewRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

var _ engagementapp.ReviewScope = (*GormReviewScope)(nil)
