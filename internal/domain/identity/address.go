package identity

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/shared"
)

var pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// ShippingAddress is where a customer receives orders
type ShippingAddress struct {
	shared.BaseEntity
	CustomerID     uuid.UUID
	Name           string
	Phone          string
	Pincode        string
	Locality       string
	Address        string
	City           string
	State          string
	Landmark       string
	AlternatePhone string
}

// ShippingAddressInput carries the editable fields of a shipping address
type ShippingAddressInput struct {
	Name           string
	Phone          string
	Pincode        string
	Locality       string
	Address        string
	City           string
	State          string
	Landmark       string
	AlternatePhone string
}

// NewShippingAddress creates a shipping address owned by a customer
func NewShippingAddress(customerID uuid.UUID, in ShippingAddressInput) (*ShippingAddress, error) {
	a := &ShippingAddress{BaseEntity: shared.NewBaseEntity(), CustomerID: customerID}
	if err := a.Update(in); err != nil {
		return nil, err
	}
	return a, nil
}

// Update replaces the editable fields after validating them
func (a *ShippingAddress) Update(in ShippingAddressInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.Pincode = strings.TrimSpace(in.Pincode)
	in.Phone = NormalizePhone(in.Phone)
	in.AlternatePhone = NormalizePhone(in.AlternatePhone)

	switch {
	case in.Name == "":
		return shared.NewValidationError("Recipient name is required")
	case in.Address == "":
		return shared.NewValidationError("Address is required")
	case in.City == "" || in.State == "":
		return shared.NewValidationError("City and state are required")
	case !pincodePattern.MatchString(in.Pincode):
		return shared.NewValidationError("Pincode must be 6 digits")
	case !PhonePattern.MatchString(in.Phone):
		return shared.NewValidationError("Invalid phone number")
	case in.AlternatePhone != "" && !PhonePattern.MatchString(in.AlternatePhone):
		return shared.NewValidationError("Invalid alternate phone number")
	}

	a.Name = in.Name
	a.Phone = in.Phone
	a.Pincode = in.Pincode
	a.Locality = strings.TrimSpace(in.Locality)
	a.Address = in.Address
	a.City = in.City
	a.State = in.State
	a.Landmark = strings.TrimSpace(in.Landmark)
	a.AlternatePhone = in.AlternatePhone
	a.Touch()
	return nil
}

// BillingAddress is the invoice address of a customer
type BillingAddress struct {
	shared.BaseEntity
	CustomerID uuid.UUID
	Street     string
	City       string
	State      string
	Country    string
	Zip        string
	IsDefault  bool
}

// NewBillingAddress creates a billing address owned by a customer
func NewBillingAddress(customerID uuid.UUID, street, city, state, country, zip string, isDefault bool) (*BillingAddress, error) {
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)
	country = strings.TrimSpace(country)
	zip = strings.TrimSpace(zip)
	if street == "" || city == "" || country == "" {
		return nil, shared.NewValidationError("Street, city and country are required")
	}
	if zip == "" || len(zip) > 20 {
		return nil, shared.NewValidationError("Zip code is required and cannot exceed 20 characters")
	}
	return &BillingAddress{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		Street:     street,
		City:       city,
		State:      strings.TrimSpace(state),
		Country:    country,
		Zip:        zip,
		IsDefault:  isDefault,
	}, nil
}
