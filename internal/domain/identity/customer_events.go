package identity

import (
	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/shared"
)

// AggregateTypeCustomer is the aggregate type for customer events
const AggregateTypeCustomer = "Customer"

// EventTypeCustomerRegistered is raised when a new account is created
const EventTypeCustomerRegistered = "CustomerRegistered"

// CustomerRegisteredEvent is raised when a new account is created
type CustomerRegisteredEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
}

// NewCustomerRegisteredEvent creates a CustomerRegisteredEvent
func NewCustomerRegisteredEvent(c *Customer) *CustomerRegisteredEvent {
	return &CustomerRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerRegistered, AggregateTypeCustomer, c.ID),
		CustomerID:      c.ID,
		Username:        c.Username,
		Email:           c.Email,
	}
}
