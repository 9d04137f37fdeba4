package dto

import (
	"net/http"

	"github.com/renztrending/backend/internal/domain/shared"
)

// API error codes. Every code returned in ErrorInfo.Code is listed here.
const (
	ErrCodeInternal = "ERR_INTERNAL"

	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"

	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"

	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"

	// Order transitions, cancelled orders, cart limits
	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"

	// Gateway checkout
	ErrCodePaymentVerification = "ERR_PAYMENT_VERIFICATION"
	ErrCodePaymentGateway      = "ERR_PAYMENT_GATEWAY"

	ErrCodePayloadTooLarge = "ERR_PAYLOAD_TOO_LARGE"
	ErrCodeRateLimited     = "ERR_RATE_LIMITED"
)

type codeInfo struct {
	status int
	// domain is the shared.DomainError code that maps onto this API code
	domain string
}

var codes = map[string]codeInfo{
	ErrCodeInternal:            {http.StatusInternalServerError, shared.CodeInternal},
	ErrCodeValidation:          {http.StatusBadRequest, shared.CodeValidation},
	ErrCodeBadRequest:          {http.StatusBadRequest, shared.CodeBadRequest},
	ErrCodeInvalidInput:        {http.StatusBadRequest, shared.CodeInvalidInput},
	ErrCodeInvalidJSON:         {http.StatusBadRequest, ""},
	ErrCodeUnauthorized:        {http.StatusUnauthorized, shared.CodeUnauthorized},
	ErrCodeForbidden:           {http.StatusForbidden, shared.CodeForbidden},
	ErrCodeTokenExpired:        {http.StatusUnauthorized, ""},
	ErrCodeTokenInvalid:        {http.StatusUnauthorized, ""},
	ErrCodeNotFound:            {http.StatusNotFound, shared.CodeNotFound},
	ErrCodeAlreadyExists:       {http.StatusConflict, shared.CodeAlreadyExists},
	ErrCodeConcurrencyConflict: {http.StatusConflict, shared.CodeConcurrencyConflict},
	ErrCodeInvalidState:        {http.StatusUnprocessableEntity, shared.CodeInvalidState},
	ErrCodeInsufficientStock:   {http.StatusUnprocessableEntity, shared.CodeInsufficientStock},
	ErrCodePaymentVerification: {http.StatusBadRequest, shared.CodePaymentVerification},
	ErrCodePaymentGateway:      {http.StatusBadGateway, shared.CodePaymentGateway},
	ErrCodePayloadTooLarge:     {http.StatusRequestEntityTooLarge, ""},
	ErrCodeRateLimited:         {http.StatusTooManyRequests, ""},
}

var fromDomain = func() map[string]string {
	m := make(map[string]string, len(codes))
	for api, info := range codes {
		if info.domain != "" {
			m[info.domain] = api
		}
	}
	return m
}()

// GetHTTPStatus returns the status for an API code; unknown codes are 500
func GetHTTPStatus(code string) int {
	if info, ok := codes[code]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// NormalizeErrorCode turns a domain code such as "NOT_FOUND" into its API
// code. API codes and unknown codes are returned unchanged.
func NormalizeErrorCode(code string) string {
	if api, ok := fromDomain[code]; ok {
		return api
	}
	return code
}
