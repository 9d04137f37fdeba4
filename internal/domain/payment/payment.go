package payment

import (
	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/order"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status is the settlement state of a payment
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
	StatusFailed  Status = "failed"
)

// Payment records how an order was or will be paid
type Payment struct {
	shared.BaseEntity
	OrderID        uuid.UUID
	Method         order.PaymentMethod
	Amount         decimal.Decimal
	Status         Status
	TransactionID  string
	GatewayOrderID string
}

// NewPendingPayment records a payment collected later (cash on delivery)
func NewPendingPayment(o *order.Order) *Payment {
	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		Method:     o.PaymentMethod,
		Amount:     o.TotalAmount,
		Status:     StatusPending,
	}
}

// NewCapturedPayment records a payment the gateway has already captured. The
// amount is what the gateway charged, which must equal the order total.
func NewCapturedPayment(o *order.Order, intent *Intent) (*Payment, error) {
	if o.GatewayPaymentID == "" {
		return nil, shared.NewValidationError("Gateway payment ID is required")
	}
	if intent.GatewayOrderID != o.GatewayOrderID {
		return nil, shared.NewValidationError("Payment belongs to a different gateway order")
	}
	if err := intent.Covers(o.TotalAmount); err != nil {
		return nil, err
	}
	return &Payment{
		BaseEntity:     shared.NewBaseEntity(),
		OrderID:        o.ID,
		Method:         o.PaymentMethod,
		Amount:         intent.Amount(),
		Status:         StatusPaid,
		TransactionID:  o.GatewayPaymentID,
		GatewayOrderID: o.GatewayOrderID,
	}, nil
}

// MarkPaid settles a pending payment, e.g. when cash is collected on delivery
func (p *Payment) MarkPaid(transactionID string) error {
	if p.Status == StatusPaid {
		return shared.NewDomainError(shared.CodeInvalidState, "Payment is already settled")
	}
	p.Status = StatusPaid
	if transactionID != "" {
		p.TransactionID = transactionID
	}
	p.Touch()
	return nil
}

// MarkFailed flags a payment that will not be collected
func (p *Payment) MarkFailed() {
	p.Status = StatusFailed
	p.Touch()
}
