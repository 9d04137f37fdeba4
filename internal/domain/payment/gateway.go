package payment

import (
	"context"
	"errors"

	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Currency used for gateway orders
const CurrencyINR = "INR"

// ErrVerificationFailed is returned when a gateway signature does not match
var ErrVerificationFailed = shared.NewDomainError(shared.CodePaymentVerification, "Payment verification failed")

// Gateway transport errors
var (
	ErrGatewayUnavailable     = errors.New("payment: gateway temporarily unavailable")
	ErrGatewayRequestFailed   = errors.New("payment: gateway request failed")
	ErrGatewayInvalidResponse = errors.New("payment: invalid gateway response")
)

// GatewayOrder is an order registered with the payment gateway
type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

// Gateway is the port to an external payment gateway. Implementations live
// in the infrastructure layer.
type Gateway interface {
	// KeyID is the public key the storefront passes to the checkout widget
	KeyID() string
	// CreateOrder registers an order for amountMinor (paise for INR)
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error)
	// VerifySignature checks the checkout callback signature in constant time
	VerifySignature(orderID, paymentID, signature string) bool
}

// ToMinorUnits converts a rupee amount to paise, rounding half away from zero
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
