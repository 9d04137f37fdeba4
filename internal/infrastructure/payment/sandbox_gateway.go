package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/renztrending/backend/internal/domain/payment"
)

// SandboxGateway creates gateway orders locally and verifies signatures with
// the same HMAC scheme as Razorpay. It backs development and tests, where a
// storefront can compute signatures with Sign.
type SandboxGateway struct {
	keyID     string
	keySecret string
}

// NewSandboxGateway creates a sandbox gateway
func NewSandboxGateway(keyID, keySecret string) *SandboxGateway {
	if keyID == "" {
		keyID = "rzp_test_sandbox"
	}
	if keySecret == "" {
		keySecret = "sandbox-secret"
	}
	return &SandboxGateway{keyID: keyID, keySecret: keySecret}
}

// KeyID returns the sandbox key
func (g *SandboxGateway) KeyID() string {
	return g.keyID
}

// CreateOrder returns an order with a random order_ ID
func (g *SandboxGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*payment.GatewayOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if amountMinor <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", payment.ErrGatewayRequestFailed)
	}
	if currency == "" {
		currency = payment.CurrencyINR
	}
	buf := make([]byte, 7)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrGatewayUnavailable, err)
	}
	return &payment.GatewayOrder{
		ID:       "order_" + hex.EncodeToString(buf),
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

// VerifySignature checks an HMAC-SHA256 signature keyed by the sandbox secret
func (g *SandboxGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return verifyHMAC(g.keySecret, orderID, paymentID, signature)
}

var _ payment.Gateway = (*SandboxGateway)(nil)
