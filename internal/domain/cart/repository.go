package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines persistence for cart lines.
// Lines are unique per (customer, product, size).
type CartRepository interface {
	// FindByCustomer returns the customer's lines with product and variant preloaded
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]CartItem, error)
	FindForCustomer(ctx context.Context, customerID, itemID uuid.UUID) (*CartItem, error)
	FindLine(ctx context.Context, customerID, productID uuid.UUID, size string) (*CartItem, error)
	// Merge inserts the line or adds its quantity to the existing line. The
	// increment only applies while the merged quantity stays within maxQuantity
	// and the existing line holds the same variant; merged is false when either
	// guard rejected the update.
	Merge(ctx context.Context, item *CartItem, maxQuantity int) (merged bool, err error)
	UpdateQuantity(ctx context.Context, item *CartItem) error
	Delete(ctx context.Context, customerID, itemID uuid.UUID) error
	Clear(ctx context.Context, customerID uuid.UUID) error
	// DeleteLines removes exactly the given lines of the customer, leaving any
	// line added since they were read
	DeleteLines(ctx context.Context, customerID uuid.UUID, ids []uuid.UUID) error
}
