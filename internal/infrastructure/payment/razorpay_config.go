package payment

import (
	"errors"
	"strings"
	"time"
)

const (
	razorpayAPIBaseURL = "https://api.razorpay.com/v1"
	defaultTimeout     = 30 * time.Second
)

// RazorpayConfig contains the credentials for the Razorpay Orders API
type RazorpayConfig struct {
	// KeyID is the public key, also handed to the checkout widget
	KeyID string
	// KeySecret signs API requests and checkout callbacks
	KeySecret string
	// BaseURL overrides the API endpoint, e.g. in tests
	BaseURL string
	Timeout time.Duration
}

// Errors for configuration validation
var (
	ErrRazorpayMissingKeyID     = errors.New("razorpay: missing key ID")
	ErrRazorpayMissingKeySecret = errors.New("razorpay: missing key secret")
)

// Validate validates the configuration
func (c *RazorpayConfig) Validate() error {
	if strings.TrimSpace(c.KeyID) == "" {
		return ErrRazorpayMissingKeyID
	}
	if strings.TrimSpace(c.KeySecret) == "" {
		return ErrRazorpayMissingKeySecret
	}
	return nil
}

func (c *RazorpayConfig) baseURL() string {
	if c.BaseURL == "" {
		return razorpayAPIBaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}

func (c *RazorpayConfig) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}
