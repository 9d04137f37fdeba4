package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/identity"
)

// RegisterRequest is the sign-up form
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=150" example:"asha"`
	Email     string `json:"email" binding:"required,email" example:"asha@example.com"`
	Phone     string `json:"phone" binding:"required,phone" example:"+919876543210"`
	Password  string `json:"password" binding:"required,min=8,max=72" example:"secret123"`
	FirstName string `json:"first_name" binding:"max=150" example:"Asha"`
	LastName  string `json:"last_name" binding:"max=150" example:"Rao"`
}

// LoginRequest accepts an email, phone or username as the identifier
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required" example:"asha@example.com"`
	Password   string `json:"password" binding:"required" example:"secret123"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutInput identifies the access token being revoked
type LogoutInput struct {
	JTI          string
	RemainingTTL time.Duration
}

// TokenResponse is returned by login, register and refresh
type TokenResponse struct {
	AccessToken           string           `json:"access_token"`
	RefreshToken          string           `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time        `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time        `json:"refresh_token_expires_at"`
	TokenType             string           `json:"token_type"`
	User                  *ProfileResponse `json:"user,omitempty"`
}

// UpdateProfileRequest edits the account page
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"max=150" example:"Asha"`
	LastName  string `json:"last_name" binding:"max=150" example:"Rao"`
	Gender    string `json:"gender" binding:"omitempty,oneof=Male Female" example:"Female"`
	GSTNumber string `json:"gst_number" binding:"omitempty,gstin" example:"29ABCDE1234F1Z5"`
}

// ChangePasswordRequest replaces the password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// ProfileResponse is the account page
type ProfileResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Gender      string     `json:"gender"`
	GSTNumber   string     `json:"gst_number"`
	Wholesale   bool       `json:"wholesale"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ShippingAddressRequest creates or replaces a shipping address
type ShippingAddressRequest struct {
	Name           string `json:"name" binding:"required,max=100" example:"Asha Rao"`
	Phone          string `json:"phone" binding:"required,phone" example:"9876543210"`
	Pincode        string `json:"pincode" binding:"required,len=6,numeric" example:"560001"`
	Locality       string `json:"locality" binding:"max=100" example:"Indiranagar"`
	Address        string `json:"address" binding:"required,max=500" example:"12, 3rd Cross"`
	City           string `json:"city" binding:"required,max=100" example:"Bengaluru"`
	State          string `json:"state" binding:"required,max=100" example:"Karnataka"`
	Landmark       string `json:"landmark" binding:"max=100"`
	AlternatePhone string `json:"alternate_phone" binding:"omitempty,phone"`
}

func (r ShippingAddressRequest) input() identity.ShippingAddressInput {
	return identity.ShippingAddressInput{
		Name:           r.Name,
		Phone:          r.Phone,
		Pincode:        r.Pincode,
		Locality:       r.Locality,
		Address:        r.Address,
		City:           r.City,
		State:          r.State,
		Landmark:       r.Landmark,
		AlternatePhone: r.AlternatePhone,
	}
}

// ShippingAddressResponse is a stored shipping address
type ShippingAddressResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Pincode        string    `json:"pincode"`
	Locality       string    `json:"locality"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	Landmark       string    `json:"landmark"`
	AlternatePhone string    `json:"alternate_phone"`
}

// BillingAddressRequest creates a billing address
type BillingAddressRequest struct {
	Street    string `json:"street" binding:"required,max=255"`
	City      string `json:"city" binding:"required,max=100"`
	State     string `json:"state" binding:"max=100"`
	Country   string `json:"country" binding:"required,max=100"`
	Zip       string `json:"zip" binding:"required,max=20"`
	IsDefault bool   `json:"is_default"`
}

// BillingAddressResponse is a stored billing address
type BillingAddressResponse struct {
	ID        uuid.UUID `json:"id"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Country   string    `json:"country"`
	Zip       string    `json:"zip"`
	IsDefault bool      `json:"is_default"`
}

// ToProfileResponse converts a customer to the account view
func ToProfileResponse(c *identity.Customer) *ProfileResponse {
	return &ProfileResponse{
		ID:          c.ID,
		Username:    c.Username,
		Email:       c.Email,
		Phone:       c.Phone,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Gender:      c.Gender,
		GSTNumber:   c.GSTNumber,
		Wholesale:   c.Wholesale(),
		Role:        c.Role(),
		LastLoginAt: c.LastLoginAt,
		CreatedAt:   c.CreatedAt,
	}
}

// ToShippingAddressResponse converts a shipping address
func ToShippingAddressResponse(a *identity.ShippingAddress) ShippingAddressResponse {
	return ShippingAddressResponse{
		ID:             a.ID,
		Name:           a.Name,
		Phone:          a.Phone,
		Pincode:        a.Pincode,
		Locality:       a.Locality,
		Address:        a.Address,
		City:           a.City,
		State:          a.State,
		Landmark:       a.Landmark,
		AlternatePhone: a.AlternatePhone,
	}
}

// ToBillingAddressResponse converts a billing address
func ToBillingAddressResponse(a *identity.BillingAddress) BillingAddressResponse {
	return BillingAddressResponse{
		ID:        a.ID,
		Street:    a.Street,
		City:      a.City,
		State:     a.State,
		Country:   a.Country,
		Zip:       a.Zip,
		IsDefault: a.IsDefault,
	}
}
