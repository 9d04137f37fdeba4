package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/infrastructure/config"
)

// TokenKind separates access tokens from refresh tokens. They are also
// signed with different secrets.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrWrongTokenKind   = errors.New("wrong token kind")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrRotationLimit    = errors.New("refresh token rotated too many times")
	ErrTokenRevoked     = errors.New("token has been revoked")
)

// Claims carried by both token kinds. Refresh tokens leave Role empty.
type Claims struct {
	jwt.RegisteredClaims
	CustomerID string    `json:"cid"`
	Username   string    `json:"username"`
	Role       string    `json:"role,omitempty"`
	Kind       TokenKind `json:"kind"`
	Rotations  int       `json:"rot,omitempty"`
}

// CustomerUUID parses CustomerID
func (c *Claims) CustomerUUID() (uuid.UUID, error) {
	return uuid.Parse(c.CustomerID)
}

// Remaining is the token lifetime left at now, never negative
func (c *Claims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil || !c.ExpiresAt.After(now) {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}

// TokenPair is what sign-in, registration and refresh hand back
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// Subject identifies who a token pair is issued to
type Subject struct {
	CustomerID uuid.UUID
	Username   string
	Role       string
}

// JWTService signs and parses HS256 tokens
type JWTService struct {
	keys         map[TokenKind][]byte
	ttl          map[TokenKind]time.Duration
	issuer       string
	maxRotations int
	now          func() time.Time
}

// NewJWTService builds the service from config. Refresh tokens fall back to
// the access secret when no refresh secret is configured.
func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshKey := cfg.RefreshSecret
	if refreshKey == "" {
		refreshKey = cfg.Secret
	}
	return &JWTService{
		keys: map[TokenKind][]byte{
			KindAccess:  []byte(cfg.Secret),
			KindRefresh: []byte(refreshKey),
		},
		ttl: map[TokenKind]time.Duration{
			KindAccess:  cfg.AccessTokenExpiration,
			KindRefresh: cfg.RefreshTokenExpiration,
		},
		issuer:       cfg.Issuer,
		maxRotations: cfg.MaxRefreshCount,
		now:          time.Now,
	}
}

// IssuePair signs a fresh access/refresh pair for sub
func (s *JWTService) IssuePair(sub Subject) (*TokenPair, error) {
	return s.issue(sub.CustomerID.String(), sub.Username, sub.Role, 0)
}

// Rotate trades a refresh token for a new pair. role comes from the caller's
// fresh lookup so a demoted account loses staff access here.
func (s *JWTService) Rotate(refreshToken, role string) (*TokenPair, error) {
	claims, err := s.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Rotations >= s.maxRotations {
		return nil, ErrRotationLimit
	}
	if _, err := claims.CustomerUUID(); err != nil {
		return nil, ErrInvalidClaims
	}
	return s.issue(claims.CustomerID, claims.Username, role, claims.Rotations+1)
}

// ParseAccess verifies an access token
func (s *JWTService) ParseAccess(token string) (*Claims, error) {
	return s.parse(token, KindAccess)
}

// ParseRefresh verifies a refresh token
func (s *JWTService) ParseRefresh(token string) (*Claims, error) {
	return s.parse(token, KindRefresh)
}

func (s *JWTService) issue(customerID, username, role string, rotations int) (*TokenPair, error) {
	now := s.now()
	access, err := s.sign(now, &Claims{
		CustomerID: customerID,
		Username:   username,
		Role:       role,
		Kind:       KindAccess,
	})
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(now, &Claims{
		CustomerID: customerID,
		Username:   username,
		Kind:       KindRefresh,
		Rotations:  rotations,
	})
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:           access,
		RefreshToken:          refresh,
		AccessTokenExpiresAt:  now.Add(s.ttl[KindAccess]),
		RefreshTokenExpiresAt: now.Add(s.ttl[KindRefresh]),
		TokenType:             "Bearer",
	}, nil
}

func (s *JWTService) sign(now time.Time, c *Claims) (string, error) {
	c.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.issuer,
		Subject:   c.CustomerID,
		Audience:  jwt.ClaimStrings{s.issuer},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl[c.Kind])),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.keys[c.Kind])
}

func (s *JWTService) parse(raw string, kind TokenKind) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.keys[kind], nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return nil, ErrTokenNotYetValid
	case err != nil:
		return nil, ErrInvalidToken
	}

	if claims.Kind != kind {
		return nil, ErrWrongTokenKind
	}
	if claims.CustomerID == "" {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
