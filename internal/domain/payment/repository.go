package payment

import (
	"context"

	"github.com/google/uuid"
)

// PaymentRepository defines persistence for payments
type PaymentRepository interface {
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Payment, error)
	// Create inserts the payment; a reused transaction ID yields ErrAlreadyExists
	Create(ctx context.Context, payment *Payment) error
	Save(ctx context.Context, payment *Payment) error
}
