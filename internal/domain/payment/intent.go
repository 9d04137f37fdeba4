package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ErrIntentNotFound is returned when a callback names a gateway order that
// was never opened for the customer
var ErrIntentNotFound = shared.NewDomainError(shared.CodePaymentVerification, "Unknown payment order")

// ErrAmountMismatch is returned when the cart no longer totals what the
// customer paid at the gateway
var ErrAmountMismatch = shared.NewDomainError(shared.CodePaymentVerification,
	"Your cart changed after payment was started; the paid amount does not match the cart total")

// Intent records a gateway order opened for a customer's cart, so the amount
// actually charged can be checked when the payment is verified
type Intent struct {
	shared.BaseEntity
	CustomerID     uuid.UUID
	GatewayOrderID string
	AmountMinor    int64
	Currency       string
	Receipt        string
}

func NewIntent(customerID uuid.UUID, gw *GatewayOrder) *Intent {
	return &Intent{
		BaseEntity:     shared.NewBaseEntity(),
		CustomerID:     customerID,
		GatewayOrderID: gw.ID,
		AmountMinor:    gw.Amount,
		Currency:       gw.Currency,
		Receipt:        gw.Receipt,
	}
}

// Covers checks that total, in rupees, is exactly the amount registered
func (i *Intent) Covers(total decimal.Decimal) error {
	if ToMinorUnits(total) != i.AmountMinor {
		return ErrAmountMismatch
	}
	return nil
}

// Amount is the registered amount in rupees
func (i *Intent) Amount() decimal.Decimal {
	return decimal.New(i.AmountMinor, -2)
}

type IntentRepository interface {
	Create(ctx context.Context, intent *Intent) error
	// FindForCustomer returns ErrIntentNotFound for unknown or foreign orders
	FindForCustomer(ctx context.Context, customerID uuid.UUID, gatewayOrderID string) (*Intent, error)
}
