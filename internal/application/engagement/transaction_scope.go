package engagement

import (
	"context"

	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/engagement"
)

// ReviewScope runs a review write and the product rating it changes in one
// database transaction
type ReviewScope interface {
	Execute(ctx context.Context, fn func(repos ReviewRepositories) error) error
}

// ReviewRepositories are repositories sharing one transaction
type ReviewRepositories interface {
	ReviewRepo() engagement.ReviewRepository
	ProductRepo() catalog.ProductRepository
}

// NoOpReviewScope runs fn directly against the given repositories
type NoOpReviewScope struct {
	reviewRepo  engagement.ReviewRepository
	productRepo catalog.ProductRepository
}

func NewNoOpReviewScope(reviewRepo engagement.ReviewRepository, productRepo catalog.ProductRepository) *NoOpReviewScope {
	return &NoOpReviewScope{reviewRepo: reviewRepo, productRepo: productRepo}
}

func (s *NoOpReviewScope) Execute(_ context.Context, fn func(repos ReviewRepositories) error) error {
	return fn(s)
}

func (s *NoOpReviewScope) ReviewRepo() engagement.ReviewRepository { return s.reviewRepo }
func (s *NoOpReviewScope) ProductRepo() catalog.ProductRepository  { return s.productRepo }

var _ ReviewScope = (*NoOpReviewScope)(nil)
