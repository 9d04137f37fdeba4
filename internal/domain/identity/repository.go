package identity

import (
	"context"

	"github.com/google/uuid"
)

// CustomerRepository defines persistence for customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	// FindByIdentifier matches an email, phone or username
	FindByIdentifier(ctx context.Context, identifier string) (*Customer, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Customer, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	Save(ctx context.Context, customer *Customer) error
}

// AddressRepository defines persistence for shipping and billing addresses.
// Lookups take the owner's ID so that foreign addresses read as not found.
type AddressRepository interface {
	FindShippingForCustomer(ctx context.Context, customerID, id uuid.UUID) (*ShippingAddress, error)
	ListShipping(ctx context.Context, customerID uuid.UUID) ([]ShippingAddress, error)
	SaveShipping(ctx context.Context, address *ShippingAddress) error
	DeleteShipping(ctx context.Context, customerID, id uuid.UUID) error

	FindBillingForCustomer(ctx context.Context, customerID, id uuid.UUID) (*BillingAddress, error)
	ListBilling(ctx context.Context, customerID uuid.UUID) ([]BillingAddress, error)
	// SaveBilling stores the address; a default address clears the owner's other defaults
	SaveBilling(ctx context.Context, address *BillingAddress) error
	DeleteBilling(ctx context.Context, customerID, id uuid.UUID) error
}
