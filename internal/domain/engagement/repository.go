package engagement

import (
	"context"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReviewRepository defines persistence for reviews
type ReviewRepository interface {
	// Create inserts the review; a duplicate (product, customer) yields ErrAlreadyReviewed
	Create(ctx context.Context, review *Review) error
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Review, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	AverageRating(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)
}

// WishlistRepository defines persistence for wishlist entries
type WishlistRepository interface {
	// Add inserts the entry unless present and reports whether a row was created
	Add(ctx context.Context, item *WishlistItem) (bool, error)
	// Remove deletes the entry and reports whether one existed
	Remove(ctx context.Context, customerID, productID uuid.UUID) (bool, error)
	Exists(ctx context.Context, customerID, productID uuid.UUID) (bool, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]WishlistItem, error)
}

// SubscriptionRepository defines persistence for newsletter subscriptions
type SubscriptionRepository interface {
	FindByEmail(ctx context.Context, email string) (*Subscription, error)
	FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]Subscription, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Subscription, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// Create inserts a subscription; a duplicate email yields ErrAlreadyExists
	Create(ctx context.Context, sub *Subscription) error
	Save(ctx context.Context, sub *Subscription) error
}
