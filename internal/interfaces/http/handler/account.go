package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/application/identity"
)

// ProfileService is the account use-case surface used by AccountHandler
type ProfileService interface {
	GetProfile(ctx context.Context, customerID uuid.UUID) (*identity.ProfileResponse, error)
	UpdateProfile(ctx context.Context, customerID uuid.UUID, req identity.UpdateProfileRequest) (*identity.ProfileResponse, error)
	ChangePassword(ctx context.Context, customerID uuid.UUID, req identity.ChangePasswordRequest) error
	ListShippingAddresses(ctx context.Context, customerID uuid.UUID) ([]identity.ShippingAddressResponse, error)
	CreateShippingAddress(ctx context.Context, customerID uuid.UUID, req identity.ShippingAddressRequest) (*identity.ShippingAddressResponse, error)
	UpdateShippingAddress(ctx context.Context, customerID, addressID uuid.UUID, req identity.ShippingAddressRequest) (*identity.ShippingAddressResponse, error)
	DeleteShippingAddress(ctx context.Context, customerID, addressID uuid.UUID) error
	ListBillingAddresses(ctx context.Context, customerID uuid.UUID) ([]identity.BillingAddressResponse, error)
	CreateBillingAddress(ctx context.Context, customerID uuid.UUID, req identity.BillingAddressRequest) (*identity.BillingAddressResponse, error)
	DeleteBillingAddress(ctx context.Context, customerID, addressID uuid.UUID) error
}

// AccountHandler serves the signed-in customer's profile and address book
type AccountHandler struct {
	BaseHandler
	profiles ProfileService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(profiles ProfileService) *AccountHandler {
	return &AccountHandler{profiles: profiles}
}

// GetProfile godoc
// @ID           getAccountProfile
// @Summary      Get profile
// @Tags         account
// @Produce      json
// @Success      200 {object} APIResponse[identity.ProfileResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /account/profile [get]
func (h *AccountHandler) GetProfile(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	resp, err := h.profiles.GetProfile(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateProfile godoc
// @ID           updateAccountProfile
// @Summary      Update profile
// @Description  Edit name, gender and GST number. A valid GST number marks the account as wholesale.
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body identity.UpdateProfileRequest true "Profile"
// @Success      200 {object} APIResponse[identity.ProfileResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /account/profile [put]
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	var req identity.UpdateProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.profiles.UpdateProfile(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ChangePassword godoc
// @ID           changeAccountPassword
// @Summary      Change password
// @Tags         account
// @Accept       json
// @Param        request body identity.ChangePasswordRequest true "Passwords"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /account/password [put]
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	var req identity.ChangePasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.profiles.ChangePassword(c.Request.Context(), customerID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListAddresses godoc
// @ID           listShippingAddresses
// @Summary      List shipping addresses
// @Tags         account
// @Produce      json
// @Success      200 {object} APIResponse[[]identity.ShippingAddressResponse]
// @Security     BearerAuth
// @Router       /account/addresses [get]
func (h *AccountHandler) ListAddresses(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	resp, err := h.profiles.ListShippingAddresses(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateAddress godoc
// @ID           createShippingAddress
// @Summary      Add a shipping address
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body identity.ShippingAddressRequest true "Address"
// @Success      201 {object} APIResponse[identity.ShippingAddressResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /account/addresses [post]
func (h *AccountHandler) CreateAddress(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	var req identity.ShippingAddressRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.profiles.CreateShippingAddress(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateAddress godoc
// @ID           updateShippingAddress
// @Summary      Replace a shipping address
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        id path string true "Address ID"
// @Param        request body identity.ShippingAddressRequest true "Address"
// @Success      200 {object} APIResponse[identity.ShippingAddressResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /account/addresses/{id} [put]
func (h *AccountHandler) UpdateAddress(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	addressID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req identity.ShippingAddressRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.profiles.UpdateShippingAddress(c.Request.Context(), customerID, addressID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteAddress godoc
// @ID           deleteShippingAddress
// @Summary      Delete a shipping address
// @Tags         account
// @Param        id path string true "Address ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /account/addresses/{id} [delete]
func (h *AccountHandler) DeleteAddress(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	addressID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.profiles.DeleteShippingAddress(c.Request.Context(), customerID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListBillingAddresses godoc
// @ID           listBillingAddresses
// @Summary      List billing addresses
// @Tags         account
// @Produce      json
// @Success      200 {object} APIResponse[[]identity.BillingAddressResponse]
// @Security     BearerAuth
// @Router       /account/billing-addresses [get]
func (h *AccountHandler) ListBillingAddresses(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	resp, err := h.profiles.ListBillingAddresses(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateBillingAddress godoc
// @ID           createBillingAddress
// @Summary      Add a billing address
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body identity.BillingAddressRequest true "Address"
// @Success      201 {object} APIResponse[identity.BillingAddressResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /account/billing-addresses [post]
func (h *AccountHandler) CreateBillingAddress(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	var req identity.BillingAddressRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.profiles.CreateBillingAddress(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// DeleteBillingAddress godoc
// @ID           deleteBillingAddress
// @Summary      Delete a billing address
// @Tags         account
// @Param        id path string true "Address ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /account/billing-addresses/{id} [delete]
func (h *AccountHandler) DeleteBillingAddress(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	addressID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.profiles.DeleteBillingAddress(c.Request.Context(), customerID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
