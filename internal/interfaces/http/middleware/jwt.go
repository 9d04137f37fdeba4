package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/audit"
	"github.com/renztrending/backend/internal/domain/identity"
	"github.com/renztrending/backend/internal/infrastructure/auth"
	"github.com/renztrending/backend/internal/infrastructure/logger"
	"github.com/renztrending/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	// ClaimsKey holds the *auth.Claims of an authenticated request
	ClaimsKey = "auth_claims"

	// customerIDKey is read by logger.GinMiddleware for the access log line
	customerIDKey = "customer_id"

	bearerPrefix = "Bearer "
)

// AuthConfig wires Authenticate
type AuthConfig struct {
	Tokens *auth.JWTService
	// Revocations is optional; nil skips the signed-out check
	Revocations auth.Revocations
	Logger      *zap.Logger
}

// Authenticate requires a valid access token. The claims are then available
// through CurrentClaims, the request logger and the audit actor.
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), bearerPrefix)
		if !ok || strings.TrimSpace(raw) == "" {
			rejectToken(c, auth.ErrInvalidToken)
			return
		}

		claims, err := cfg.Tokens.ParseAccess(raw)
		if err != nil {
			log.Debug("Rejected access token", zap.Error(err), zap.String("path", c.FullPath()))
			rejectToken(c, err)
			return
		}

		if cfg.Revocations != nil {
			revoked, err := cfg.Revocations.IsRevoked(c.Request.Context(), claims.ID)
			switch {
			case err != nil:
				// a cache outage must not sign everyone out
				log.Error("Revocation check failed", zap.String("jti", claims.ID), zap.Error(err))
			case revoked:
				rejectToken(c, auth.ErrTokenRevoked)
				return
			}
		}

		SetClaims(c, claims)
		c.Next()
	}
}

// SetClaims attaches claims to the request
func SetClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(ClaimsKey, claims)
	c.Set(customerIDKey, claims.CustomerID)

	ctx := c.Request.Context()
	ctx, _ = logger.WithCustomerID(ctx, logger.FromContext(ctx), claims.CustomerID)
	if id, err := claims.CustomerUUID(); err == nil {
		ctx = audit.WithActor(ctx, id)
	}
	c.Request = c.Request.WithContext(ctx)
}

var tokenRejections = []struct {
	err     error
	code    string
	message string
}{
	{auth.ErrExpiredToken, dto.ErrCodeTokenExpired, "Token has expired"},
	{auth.ErrTokenRevoked, dto.ErrCodeTokenInvalid, "Token has been revoked"},
	{auth.ErrWrongTokenKind, dto.ErrCodeTokenInvalid, "Invalid token type"},
	{auth.ErrTokenNotYetValid, dto.ErrCodeTokenInvalid, "Token is not yet valid"},
}

func rejectToken(c *gin.Context, err error) {
	code, message := dto.ErrCodeTokenInvalid, "Invalid token"
	for _, r := range tokenRejections {
		if errors.Is(err, r.err) {
			code, message = r.code, r.message
			break
		}
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, c.GetString(RequestIDContextKey)))
}

// RequireStaff runs after Authenticate and rejects non-staff tokens with 403
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentRole(c) != identity.RoleStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden, "Staff access required", c.GetString(RequestIDContextKey)))
			return
		}
		c.Next()
	}
}

// CurrentClaims returns the authenticated claims, or nil
func CurrentClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// CurrentCustomerID returns the authenticated customer's ID
func CurrentCustomerID(c *gin.Context) (uuid.UUID, bool) {
	claims := CurrentClaims(c)
	if claims == nil {
		return uuid.Nil, false
	}
	id, err := claims.CustomerUUID()
	return id, err == nil
}

// CurrentRole is the role of the authenticated customer, or ""
func CurrentRole(c *gin.Context) string {
	if claims := CurrentClaims(c); claims != nil {
		return claims.Role
	}
	return ""
}
