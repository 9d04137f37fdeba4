package engagement

import (
	"time"

	"github.com/google/uuid"
	catalogapp "github.com/renztrending/backend/internal/application/catalog"
	"github.com/renztrending/backend/internal/domain/engagement"
	"github.com/shopspring/decimal"
)

// CreateReviewRequest rates a product
type CreateReviewRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Comment   string    `json:"comment" binding:"max=2000"`
}

// ReviewListFilter pages through a product's reviews
type ReviewListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewListResponse is one page of reviews with the product's average
type ReviewListResponse struct {
	Items         []ReviewResponse `json:"items"`
	Total         int64            `json:"total"`
	AverageRating decimal.Decimal  `json:"average_rating"`
}

// WishlistItemResponse is a saved product
type WishlistItemResponse struct {
	ProductID uuid.UUID                   `json:"product_id"`
	AddedAt   time.Time                   `json:"added_at"`
	Product   *catalogapp.ProductResponse `json:"product,omitempty"`
}

// WishlistStatusResponse says whether a product is saved
type WishlistStatusResponse struct {
	InWishlist bool `json:"in_wishlist"`
}

// SubscribeRequest joins or leaves the newsletter
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email,max=254"`
}

// BulkConfirmationRequest re-sends the confirmation mail to subscribers
type BulkConfirmationRequest struct {
	SubscriptionIDs []uuid.UUID `json:"subscription_ids" binding:"required,min=1,max=1000"`
}

// BulkConfirmationResponse reports how many mails were queued
type BulkConfirmationResponse struct {
	Queued int `json:"queued"`
}

// SubscriptionListFilter pages through subscribers
type SubscriptionListFilter struct {
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// SubscriptionResponse represents a newsletter signup
type SubscriptionResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	IsActive    bool       `json:"is_active"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToReviewResponse converts a review to its response
func ToReviewResponse(r *engagement.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		ProductID:  r.ProductID,
		CustomerID: r.CustomerID,
		AuthorName: r.AuthorName,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

// ToWishlistItemResponse converts a wishlist entry to its response
func ToWishlistItemResponse(w *engagement.WishlistItem) WishlistItemResponse {
	resp := WishlistItemResponse{ProductID: w.ProductID, AddedAt: w.CreatedAt}
	if w.Product != nil {
		p := catalogapp.ToProductResponse(w.Product)
		resp.Product = &p
	}
	return resp
}

// ToSubscriptionResponse converts a subscription to its response
func ToSubscriptionResponse(s *engagement.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:          s.ID,
		Email:       s.Email,
		IsActive:    s.IsActive,
		ConfirmedAt: s.ConfirmedAt,
		CreatedAt:   s.CreatedAt,
	}
}
