package handler

import "github.com/renztrending/backend/internal/interfaces/http/dto"

// Typed views of dto.Response used only by the swag annotations; handlers
// always write dto.Response itself.

// APIResponse is a successful envelope with a typed payload
type APIResponse[T any] struct {
	Success bool      `json:"success" example:"true"`
	Data    T         `json:"data,omitempty"`
	Message string    `json:"message,omitempty"`
	Meta    *dto.Meta `json:"meta,omitempty"`
}

// ErrorResponse is a failed envelope
type ErrorResponse struct {
	Success bool          `json:"success" example:"false"`
	Error   dto.ErrorInfo `json:"error"`
}

// MessageResponse is a success envelope with only a message
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Product added to wishlist"`
}
