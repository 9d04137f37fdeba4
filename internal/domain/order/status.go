package order

import (
	"strings"

	"github.com/renztrending/backend/internal/domain/shared"
)

// OrderStatus is the fulfilment state of an order
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPacked         OrderStatus = "packed"
	StatusShipped        OrderStatus = "shipped"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// transitions is the explicit allow-list of status moves
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusConfirmed, StatusPacked, StatusShipped, StatusCancelled},
	StatusConfirmed:      {StatusPacked, StatusShipped, StatusOutForDelivery, StatusCancelled},
	StatusPacked:         {StatusShipped, StatusOutForDelivery, StatusCancelled},
	StatusShipped:        {StatusOutForDelivery, StatusDelivered, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// statusAliases maps legacy labels onto canonical statuses
var statusAliases = map[string]OrderStatus{
	"processing": StatusConfirmed,
	"canceled":   StatusCancelled,
}

// AllStatuses lists statuses in lifecycle order
func AllStatuses() []OrderStatus {
	return []OrderStatus{
		StatusPending, StatusConfirmed, StatusPacked, StatusShipped,
		StatusOutForDelivery, StatusDelivered, StatusCancelled,
	}
}

// ParseOrderStatus accepts any casing, with spaces or hyphens in place of
// underscores ("Shipped", "out for delivery", "Out-For-Delivery").
func ParseOrderStatus(s string) (OrderStatus, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if alias, ok := statusAliases[key]; ok {
		return alias, nil
	}
	status := OrderStatus(key)
	if !status.IsValid() {
		return "", shared.NewValidationError("Invalid order status: " + s)
	}
	return status, nil
}

// IsValid reports whether the status is known
func (s OrderStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// String returns the canonical value
func (s OrderStatus) String() string {
	return string(s)
}

// Label is the human-readable status ("Out for delivery")
func (s OrderStatus) Label() string {
	text := strings.ReplaceAll(string(s), "_", " ")
	if text == "" {
		return ""
	}
	return strings.ToUpper(text[:1]) + text[1:]
}

// IsTerminal reports whether no further transition is possible
func (s OrderStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo checks the allow-list
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// HasShipped reports whether the parcel has left the warehouse
func (s OrderStatus) HasShipped() bool {
	switch s {
	case StatusShipped, StatusOutForDelivery, StatusDelivered:
		return true
	}
	return false
}

// PaymentMethod is how an order is paid
type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentOnline PaymentMethod = "online"
)

// Label is the human-readable payment method
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCOD:
		return "Cash on delivery"
	case PaymentOnline:
		return "Online payment"
	}
	return string(m)
}
