package engagement

import (
	"strings"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/shared"
)

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// ErrAlreadyReviewed is returned for a second review of the same product by the same customer
var ErrAlreadyReviewed = shared.NewDomainError(shared.CodeAlreadyExists, "You have already reviewed this product")

// Review is a customer's rating of a product; one per (product, customer)
type Review struct {
	shared.BaseEntity
	CustomerID uuid.UUID
	ProductID  uuid.UUID
	Rating     int
	Comment    string

	// AuthorName is populated on reads
	AuthorName string
}

// NewReview creates a review
func NewReview(customerID, productID uuid.UUID, rating int, comment string) (*Review, error) {
	if rating < MinRating || rating > MaxRating {
		return nil, shared.NewValidationError("Rating must be between 1 and 5")
	}
	comment = strings.TrimSpace(comment)
	if len(comment) > 2000 {
		return nil, shared.NewValidationError("Comment cannot exceed 2000 characters")
	}
	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		ProductID:  productID,
		Rating:     rating,
		Comment:    comment,
	}, nil
}
