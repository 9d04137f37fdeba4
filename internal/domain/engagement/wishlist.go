package engagement

import (
	"time"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/shared"
)

// ErrNotInWishlist is returned when removing a product that was never added
var ErrNotInWishlist = shared.NewNotFoundError("Product not in wishlist")

// WishlistItem is a product saved by a customer; unique per (customer, product)
type WishlistItem struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	ProductID  uuid.UUID
	CreatedAt  time.Time

	// Product is populated when preloaded
	Product *catalog.Product
}

// NewWishlistItem creates a wishlist entry
func NewWishlistItem(customerID, productID uuid.UUID) *WishlistItem {
	return &WishlistItem{
		ID:         uuid.New(),
		CustomerID: customerID,
		ProductID:  productID,
		CreatedAt:  time.Now(),
	}
}
