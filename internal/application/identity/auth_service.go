package identity

import (
	"context"
	"errors"

	"github.com/renztrending/backend/internal/domain/identity"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/renztrending/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned for any failed login so callers cannot enumerate accounts
var ErrInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Invalid credentials")

// AuthService handles registration and token issuance
type AuthService struct {
	customerRepo identity.CustomerRepository
	jwtService   *auth.JWTService
	revocations  auth.Revocations
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	customerRepo identity.CustomerRepository,
	jwtService *auth.JWTService,
	revocations auth.Revocations,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		customerRepo: customerRepo,
		jwtService:   jwtService,
		revocations:  revocations,
		publisher:    publisher,
		logger:       logger,
	}
}

// Register creates a customer account and signs it in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	customer, err := identity.NewCustomer(req.Username, req.Email, req.Phone, req.Password)
	if err != nil {
		return nil, err
	}
	if err := customer.UpdateProfile(req.FirstName, req.LastName, ""); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, customer); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		// a concurrent registration can still hit the unique index
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError(shared.CodeAlreadyExists, "An account with these details already exists")
		}
		return nil, err
	}

	if events := customer.PullDomainEvents(); s.publisher != nil {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("Failed to publish registration event", zap.Error(err))
		}
	}

	s.logger.Info("Customer registered",
		zap.String("customer_id", customer.ID.String()),
		zap.String("username", customer.Username))

	return s.issue(customer)
}

func (s *AuthService) ensureUnique(ctx context.Context, c *identity.Customer) error {
	checks := []struct {
		exists  func(context.Context, string) (bool, error)
		value   string
		message string
	}{
		{s.customerRepo.ExistsByEmail, c.Email, "Email is already registered"},
		{s.customerRepo.ExistsByPhone, c.Phone, "Phone number is already registered"},
		{s.customerRepo.ExistsByUsername, c.Username, "Username is already taken"},
	}
	for _, check := range checks {
		exists, err := check.exists(ctx, check.value)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError(shared.CodeAlreadyExists, check.message)
		}
	}
	return nil
}

// Login authenticates by email, phone or username
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	customer, err := s.customerRepo.FindByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login for unknown identifier")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !customer.IsActive || !customer.VerifyPassword(req.Password) {
		s.logger.Warn("Failed login attempt", zap.String("customer_id", customer.ID.String()))
		return nil, ErrInvalidCredentials
	}

	customer.RecordLogin()
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		// the login itself succeeded
		s.logger.Error("Failed to record login", zap.Error(err))
	}

	s.logger.Info("Customer logged in", zap.String("customer_id", customer.ID.String()))
	return s.issue(customer)
}

// Refresh rotates a refresh token, re-reading the account's role
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*TokenResponse, error) {
	claims, err := s.jwtService.ParseRefresh(req.RefreshToken)
	if err != nil {
		return nil, tokenError(err)
	}
	customerID, err := claims.CustomerUUID()
	if err != nil {
		return nil, tokenError(auth.ErrInvalidClaims)
	}

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !customer.IsActive {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.jwtService.Rotate(req.RefreshToken, customer.Role())
	if err != nil {
		return nil, tokenError(err)
	}
	return tokenResponse(pair, nil), nil
}

// Logout revokes the presented access token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, in LogoutInput) error {
	if s.revocations == nil || in.JTI == "" {
		return nil
	}
	if err := s.revocations.Revoke(ctx, in.JTI, in.RemainingTTL); err != nil {
		return err
	}
	return nil
}

func (s *AuthService) issue(c *identity.Customer) (*TokenResponse, error) {
	pair, err := s.jwtService.IssuePair(auth.Subject{
		CustomerID: c.ID,
		Username:   c.Username,
		Role:       c.Role(),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to generate authentication tokens")
	}
	return tokenResponse(pair, ToProfileResponse(c)), nil
}

func tokenResponse(pair *auth.TokenPair, profile *ProfileResponse) *TokenResponse {
	return &TokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  profile,
	}
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError(shared.CodeUnauthorized, "Refresh token has expired")
	case errors.Is(err, auth.ErrRotationLimit):
		return shared.NewDomainError(shared.CodeUnauthorized, "Session expired. Please log in again")
	default:
		return shared.NewDomainError(shared.CodeUnauthorized, "Invalid refresh token")
	}
}
