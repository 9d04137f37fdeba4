package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/identity"
)

// ProfileService manages the signed-in customer's account and address book
type ProfileService struct {
	customerRepo identity.CustomerRepository
	addressRepo  identity.AddressRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(customerRepo identity.CustomerRepository, addressRepo identity.AddressRepository) *ProfileService {
	return &ProfileService{customerRepo: customerRepo, addressRepo: addressRepo}
}

// GetProfile returns the account page
func (s *ProfileService) GetProfile(ctx context.Context, customerID uuid.UUID) (*ProfileResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToProfileResponse(customer), nil
}

// UpdateProfile edits names, gender and GSTIN
func (s *ProfileService) UpdateProfile(ctx context.Context, customerID uuid.UUID, req UpdateProfileRequest) (*ProfileResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := customer.UpdateProfile(req.FirstName, req.LastName, req.Gender); err != nil {
		return nil, err
	}
	if err := customer.SetGSTNumber(req.GSTNumber); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return ToProfileResponse(customer), nil
}

// ChangePassword replaces the password after checking the current one
func (s *ProfileService) ChangePassword(ctx context.Context, customerID uuid.UUID, req ChangePasswordRequest) error {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return err
	}
	if err := customer.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return s.customerRepo.Save(ctx, customer)
}

// ListShippingAddresses returns the customer's shipping addresses
func (s *ProfileService) ListShippingAddresses(ctx context.Context, customerID uuid.UUID) ([]ShippingAddressResponse, error) {
	addresses, err := s.addressRepo.ListShipping(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]ShippingAddressResponse, len(addresses))
	for i := range addresses {
		out[i] = ToShippingAddressResponse(&addresses[i])
	}
	return out, nil
}

// CreateShippingAddress adds a shipping address
func (s *ProfileService) CreateShippingAddress(ctx context.Context, customerID uuid.UUID, req ShippingAddressRequest) (*ShippingAddressResponse, error) {
	address, err := identity.NewShippingAddress(customerID, req.input())
	if err != nil {
		return nil, err
	}
	if err := s.addressRepo.SaveShipping(ctx, address); err != nil {
		return nil, err
	}
	resp := ToShippingAddressResponse(address)
	return &resp, nil
}

// UpdateShippingAddress replaces a shipping address owned by the customer
func (s *ProfileService) UpdateShippingAddress(ctx context.Context, customerID, addressID uuid.UUID, req ShippingAddressRequest) (*ShippingAddressResponse, error) {
	address, err := s.addressRepo.FindShippingForCustomer(ctx, customerID, addressID)
	if err != nil {
		return nil, err
	}
	if err := address.Update(req.input()); err != nil {
		return nil, err
	}
	if err := s.addressRepo.SaveShipping(ctx, address); err != nil {
		return nil, err
	}
	resp := ToShippingAddressResponse(address)
	return &resp, nil
}

// DeleteShippingAddress removes a shipping address owned by the customer
func (s *ProfileService) DeleteShippingAddress(ctx context.Context, customerID, addressID uuid.UUID) error {
	return s.addressRepo.DeleteShipping(ctx, customerID, addressID)
}

// ListBillingAddresses returns the customer's billing addresses
func (s *ProfileService) ListBillingAddresses(ctx context.Context, customerID uuid.UUID) ([]BillingAddressResponse, error) {
	addresses, err := s.addressRepo.ListBilling(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]BillingAddressResponse, len(addresses))
	for i := range addresses {
		out[i] = ToBillingAddressResponse(&addresses[i])
	}
	return out, nil
}

// CreateBillingAddress adds a billing address; a default clears the others
func (s *ProfileService) CreateBillingAddress(ctx context.Context, customerID uuid.UUID, req BillingAddressRequest) (*BillingAddressResponse, error) {
	address, err := identity.NewBillingAddress(customerID, req.Street, req.City, req.State, req.Country, req.Zip, req.IsDefault)
	if err != nil {
		return nil, err
	}
	if err := s.addressRepo.SaveBilling(ctx, address); err != nil {
		return nil, err
	}
	resp := ToBillingAddressResponse(address)
	return &resp, nil
}

// DeleteBillingAddress removes a billing address owned by the customer
func (s *ProfileService) DeleteBillingAddress(ctx context.Context, customerID, addressID uuid.UUID) error {
	return s.addressRepo.DeleteBilling(ctx, customerID, addressID)
}
