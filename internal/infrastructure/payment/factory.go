package payment

import (
	"fmt"

	"github.com/renztrending/backend/internal/domain/payment"
	"github.com/renztrending/backend/internal/infrastructure/config"
	"github.com/renztrending/backend/internal/infrastructure/telemetry"
)

// NewGateway builds the gateway selected by cfg.Provider
func NewGateway(cfg config.PaymentConfig) (payment.Gateway, error) {
	switch cfg.Provider {
	case "", "sandbox":
		return NewSandboxGateway(cfg.KeyID, cfg.KeySecret), nil
	case "razorpay":
		adapter, err := NewRazorpayAdapter(&RazorpayConfig{
			KeyID:     cfg.KeyID,
			KeySecret: cfg.KeySecret,
			BaseURL:   cfg.BaseURL,
			Timeout:   cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return adapter.WithHTTPClient(telemetry.HTTPClient(adapter.httpClient)), nil
	default:
		return nil, fmt.Errorf("payment: unknown provider %q", cfg.Provider)
	}
}
