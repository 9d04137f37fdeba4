package engagement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	catalogapp "github.com/renztrending/backend/internal/application/catalog"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/engagement"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReviewService manages product reviews
type ReviewService struct {
	reviewRepo  engagement.ReviewRepository
	productRepo catalog.ProductRepository
	txScope     ReviewScope
	cache       catalogapp.ProductCache
	logger      *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo engagement.ReviewRepository, productRepo catalog.ProductRepository, txScope ReviewScope, cache catalogapp.ProductCache, logger *zap.Logger) *ReviewService {
	if cache == nil {
		cache = catalogapp.NopProductCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewService{reviewRepo: reviewRepo, productRepo: productRepo, txScope: txScope, cache: cache, logger: logger}
}

// Create stores the customer's review and refreshes the product rating in
// the same transaction. Each customer reviews a product once.
func (s *ReviewService) Create(ctx context.Context, customerID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	review, err := engagement.NewReview(customerID, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	var avg decimal.Decimal
	err = s.txScope.Execute(ctx, func(repos ReviewRepositories) error {
		if err := repos.ReviewRepo().Create(ctx, review); err != nil {
			return err
		}
		var err error
		avg, err = repos.ReviewRepo().AverageRating(ctx, product.ID)
		if err != nil {
			return err
		}
		return repos.ProductRepo().UpdateRating(ctx, product.ID, avg.Round(2))
	})
	if err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, engagement.ErrAlreadyReviewed
		}
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, product.Slug); err != nil {
		s.logger.Warn("Failed to invalidate product cache", zap.String("slug", product.Slug), zap.Error(err))
	}

	s.logger.Info("Review created",
		zap.String("product_id", product.ID.String()),
		zap.Int("rating", review.Rating),
		zap.String("average", avg.StringFixed(2)))

	resp := ToReviewResponse(review)
	return &resp, nil
}

// ListForProduct returns a page of the product's reviews, newest first
func (s *ReviewService) ListForProduct(ctx context.Context, productID uuid.UUID, f ReviewListFilter) (*ReviewListResponse, error) {
	filter := shared.DefaultFilter().Paged(f.Page, f.PageSize, "")

	reviews, err := s.reviewRepo.FindByProduct(ctx, productID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.reviewRepo.CountByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	avg, err := s.reviewRepo.AverageRating(ctx, productID)
	if err != nil {
		return nil, err
	}

	items := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		items[i] = ToReviewResponse(&reviews[i])
	}
	return &ReviewListResponse{Items: items, Total: total, AverageRating: avg.Round(2)}, nil
}

// ListForProductSlug resolves the storefront slug and lists its reviews
func (s *ReviewService) ListForProductSlug(ctx context.Context, slug string, f ReviewListFilter) (*ReviewListResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.ListForProduct(ctx, product.ID, f)
}
