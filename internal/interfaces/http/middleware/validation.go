package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/renztrending/backend/internal/domain/identity"
	"github.com/renztrending/backend/internal/interfaces/http/dto"
)

var setupOnce sync.Once

// SetupValidator configures gin's validator: JSON (or form) names in error
// details, plus the gstin and phone tags used by the account forms
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		_ = v.RegisterValidation("gstin", validateGSTIN)
		_ = v.RegisterValidation("phone", validatePhone)
	})
}

func validateGSTIN(fl validator.FieldLevel) bool {
	return identity.GSTINPattern.MatchString(strings.ToUpper(strings.TrimSpace(fl.Field().String())))
}

func validatePhone(fl validator.FieldLevel) bool {
	return identity.PhonePattern.MatchString(identity.NormalizePhone(fl.Field().String()))
}

// FormatValidationErrors lists each rejected field of a bind error
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details = make([]dto.ValidationDetail, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, dto.ValidationDetail{Field: fe.Field(), Message: fieldMessage(fe)})
		}
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError answers a failed bind: 413 when BodyLimit cut the
// body short, ERR_INVALID_JSON for unparseable bodies, and field details
// otherwise
func HandleValidationError(c *gin.Context, err error) {
	requestID := c.GetString(RequestIDContextKey)
	var tooLarge *http.MaxBytesError
	var fieldErrs validator.ValidationErrors
	switch {
	case errors.As(err, &tooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
			dto.ErrCodePayloadTooLarge, "Request body exceeds maximum allowed size", requestID))
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, FormatValidationErrors(err, requestID))
	default:
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeInvalidJSON, "Request body is not valid JSON", requestID))
	}
}

var fixedMessages = map[string]string{
	"required": "This field is required",
	"email":    "Invalid email format",
	"uuid":     "Invalid UUID format",
	"url":      "Invalid URL format",
	"numeric":  "Must be numeric",
	"gstin":    "Invalid GST number",
	"phone":    "Invalid phone number",
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := fixedMessages[fe.Tag()]; ok {
		return msg
	}
	p := fe.Param()
	switch fe.Tag() {
	case "min", "max":
		bound := "at least "
		if fe.Tag() == "max" {
			bound = "at most "
		}
		switch fe.Kind() {
		case reflect.String:
			return "Must be " + bound + p + " characters"
		case reflect.Slice:
			return "Must contain " + bound + p + " items"
		}
		return "Must be " + bound + p
	case "len":
		return "Must be exactly " + p + " characters"
	case "oneof":
		return "Must be one of: " + p
	case "gte":
		return "Must be greater than or equal to " + p
	case "lte":
		return "Must be less than or equal to " + p
	}
	return "Invalid value"
}
