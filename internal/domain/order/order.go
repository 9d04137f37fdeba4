package order

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TrackingPrefix starts every generated tracking number
const TrackingPrefix = "AG"

// ErrOrderNumberTaken is returned by OrderRepository.Create when the
// generated order number is already in use; Renumber and retry
var ErrOrderNumberTaken = errors.New("order: order number already in use")

// Shipment holds the courier booking details of an order
type Shipment struct {
	ShipmentOrderID  string
	ShipmentID       string
	AWBCode          string
	CourierCompanyID string
	CourierName      string
}

// OrderItem is the snapshot of one cart line taken at checkout
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	CartItemID  *uuid.UUID
	ProductID   uuid.UUID
	VariantID   *uuid.UUID
	ProductName string
	Size        string
	UnitPrice   decimal.Decimal
	Quantity    int
	Amount      decimal.Decimal
	CreatedAt   time.Time
}

// NewOrderItem snapshots a purchased line
func NewOrderItem(cartItemID *uuid.UUID, productID uuid.UUID, variantID *uuid.UUID, productName, size string, unitPrice decimal.Decimal, quantity int) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewValidationError("Quantity must be greater than 0")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewValidationError("Unit price cannot be negative")
	}
	return &OrderItem{
		ID:          uuid.New(),
		CartItemID:  cartItemID,
		ProductID:   productID,
		VariantID:   variantID,
		ProductName: productName,
		Size:        size,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		Amount:      unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:   time.Now(),
	}, nil
}

// Order is a placed purchase. Its total is fixed when the order is created.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber          string
	CustomerID           uuid.UUID
	ShippingAddressID    *uuid.UUID
	BillingAddressID     *uuid.UUID
	Status               OrderStatus
	PaymentMethod        PaymentMethod
	TotalAmount          decimal.Decimal
	TrackingNumber       string
	Carrier              string
	ExpectedDeliveryDate *time.Time
	Shipment             Shipment
	GatewayOrderID       string
	GatewayPaymentID     string
	Items                []OrderItem
}

// NewCODOrder creates a pending cash-on-delivery order
func NewCODOrder(customerID uuid.UUID, items []OrderItem) (*Order, error) {
	tracking, err := NewCODTrackingNumber()
	if err != nil {
		return nil, err
	}
	o, err := newOrder(customerID, PaymentCOD, StatusPending, items)
	if err != nil {
		return nil, err
	}
	o.TrackingNumber = tracking
	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return o, nil
}

// NewPaidOrder creates a confirmed order for a verified gateway payment
func NewPaidOrder(customerID uuid.UUID, gatewayOrderID, paymentID string, items []OrderItem) (*Order, error) {
	if gatewayOrderID == "" || paymentID == "" {
		return nil, shared.NewValidationError("Gateway order and payment IDs are required")
	}
	o, err := newOrder(customerID, PaymentOnline, StatusConfirmed, items)
	if err != nil {
		return nil, err
	}
	o.GatewayOrderID = gatewayOrderID
	o.GatewayPaymentID = paymentID
	o.TrackingNumber = GatewayTrackingNumber(paymentID)
	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return o, nil
}

func newOrder(customerID uuid.UUID, method PaymentMethod, status OrderStatus, items []OrderItem) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("Customer ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewValidationError("Cart is empty")
	}
	number, err := NewOrderNumber(time.Now())
	if err != nil {
		return nil, err
	}
	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       number,
		CustomerID:        customerID,
		Status:            status,
		PaymentMethod:     method,
	}
	total := decimal.Zero
	o.Items = make([]OrderItem, len(items))
	for i, it := range items {
		it.OrderID = o.ID
		o.Items[i] = it
		total = total.Add(it.Amount)
	}
	o.TotalAmount = total
	return o, nil
}

// SetAddresses links the delivery and billing addresses
func (o *Order) SetAddresses(shippingID, billingID *uuid.UUID) {
	o.ShippingAddressID = shippingID
	o.BillingAddressID = billingID
}

// TransitionTo moves the order along the allow-listed lifecycle
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewValidationError("Invalid order status: " + string(target))
	}
	if o.Status == target {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Order is already %s", target.Label()))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot change order status from %s to %s", o.Status, target))
	}
	from := o.Status
	o.Status = target
	o.Touch()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, target))
	return nil
}

// Cancel cancels the order if its lifecycle still allows it
func (o *Order) Cancel() error {
	return o.TransitionTo(StatusCancelled)
}

// CanChangeAddress reports whether the delivery address is still editable
func (o *Order) CanChangeAddress() bool {
	return !o.Status.HasShipped() && o.Status != StatusCancelled
}

// ReassignShippingAddress points the order at another address of the same customer
func (o *Order) ReassignShippingAddress(addressID uuid.UUID) error {
	if !o.CanChangeAddress() {
		return shared.NewDomainError(shared.CodeInvalidState, "Address cannot be changed once the order has shipped or been cancelled")
	}
	o.ShippingAddressID = &addressID
	o.Touch()
	return nil
}

// UpdateTracking records the carrier tracking details
func (o *Order) UpdateTracking(trackingNumber, carrier string, expected *time.Time) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return shared.NewValidationError("Tracking number is required")
	}
	if o.Status == StatusCancelled {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot update tracking of a cancelled order")
	}
	o.TrackingNumber = trackingNumber
	o.Carrier = strings.TrimSpace(carrier)
	o.ExpectedDeliveryDate = expected
	o.Touch()
	return nil
}

// UpdateShipment records the courier booking
func (o *Order) UpdateShipment(s Shipment) error {
	if o.Status == StatusCancelled {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot book a shipment for a cancelled order")
	}
	o.Shipment = s
	if s.CourierName != "" && o.Carrier == "" {
		o.Carrier = s.CourierName
	}
	o.Touch()
	return nil
}

// ItemCount is the number of units ordered
func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// LineCount is the number of order lines
func (o *Order) LineCount() int {
	return len(o.Items)
}

// NewOrderNumber builds a human-facing order number: RT-YYYYMMDD-NNNNNNNNNN
func NewOrderNumber(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10_000_000_000))
	if err != nil {
		return "", fmt.Errorf("generate order number: %w", err)
	}
	return fmt.Sprintf("RT-%s-%010d", now.Format("20060102"), n.Int64()), nil
}

// Renumber draws a fresh order number for a not yet persisted order
func (o *Order) Renumber() error {
	number, err := NewOrderNumber(o.CreatedAt)
	if err != nil {
		return err
	}
	o.OrderNumber = number
	return nil
}

// NewCODTrackingNumber returns AG followed by 8 random digits
func NewCODTrackingNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90_000_000))
	if err != nil {
		return "", fmt.Errorf("generate tracking number: %w", err)
	}
	return fmt.Sprintf("%s%d", TrackingPrefix, n.Int64()+10_000_000), nil
}

// GatewayTrackingNumber returns AG followed by the last 8 characters of the payment ID
func GatewayTrackingNumber(paymentID string) string {
	if len(paymentID) > 8 {
		paymentID = paymentID[len(paymentID)-8:]
	}
	return TrackingPrefix + paymentID
}
