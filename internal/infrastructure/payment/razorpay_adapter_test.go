package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/renztrending/backend/internal/domain/payment"
	"github.com/renztrending/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *RazorpayAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	adapter, err := NewRazorpayAdapter(&RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "secret",
		BaseURL:   server.URL + "/",
		Timeout:   5 * time.Second,
	})
	require.NoError(t, err)
	return adapter
}

func TestRazorpayConfig_Validate(t *testing.T) {
	assert.ErrorIs(t, (&RazorpayConfig{KeySecret: "s"}).Validate(), ErrRazorpayMissingKeyID)
	assert.ErrorIs(t, (&RazorpayConfig{KeyID: "k"}).Validate(), ErrRazorpayMissingKeySecret)
	assert.NoError(t, (&RazorpayConfig{KeyID: "k", KeySecret: "s"}).Validate())
}

func TestRazorpayAdapter_CreateOrder(t *testing.T) {
	t.Run("creates order with basic auth", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/orders", r.URL.Path)
			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "rzp_test_key", user)
			assert.Equal(t, "secret", pass)

			var req razorpayCreateOrderRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, int64(149850), req.Amount)
			assert.Equal(t, "INR", req.Currency)
			assert.Equal(t, "rcpt_1", req.Receipt)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"order_Abc123","entity":"order","amount":149850,"currency":"INR","receipt":"rcpt_1","status":"created"}`))
		})

		order, err := adapter.CreateOrder(context.Background(), 149850, "", "rcpt_1")
		require.NoError(t, err)
		assert.Equal(t, "order_Abc123", order.ID)
		assert.Equal(t, int64(149850), order.Amount)
		assert.Equal(t, "created", order.Status)
		assert.Equal(t, "rzp_test_key", adapter.KeyID())
	})

	t.Run("client error carries gateway message", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Authentication failed"}}`))
		})

		_, err := adapter.CreateOrder(context.Background(), 100, "INR", "r")
		assert.ErrorIs(t, err, payment.ErrGatewayRequestFailed)
		assert.Contains(t, err.Error(), "Authentication failed")
	})

	t.Run("server error is unavailable", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := adapter.CreateOrder(context.Background(), 100, "INR", "r")
		assert.ErrorIs(t, err, payment.ErrGatewayUnavailable)
	})

	t.Run("malformed body", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"entity":"order"}`))
		})

		_, err := adapter.CreateOrder(context.Background(), 100, "INR", "r")
		assert.ErrorIs(t, err, payment.ErrGatewayInvalidResponse)
	})

	t.Run("non-positive amount never reaches the gateway", func(t *testing.T) {
		called := false
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) { called = true })

		_, err := adapter.CreateOrder(context.Background(), 0, "INR", "r")
		assert.ErrorIs(t, err, payment.ErrGatewayRequestFailed)
		assert.False(t, called)
	})
}

func TestVerifySignature(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {})
	valid := Sign("secret", "order_1", "pay_1")

	tests := []struct {
		name            string
		order, pay, sig string
		want            bool
	}{
		{"valid", "order_1", "pay_1", valid, true},
		{"uppercase hex", "order_1", "pay_1", strings.ToUpper(valid), true},
		{"swapped ids", "pay_1", "order_1", valid, false},
		{"other payment", "order_1", "pay_2", valid, false},
		{"empty signature", "order_1", "pay_1", "", false},
		{"empty payment", "order_1", "", Sign("secret", "order_1", ""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adapter.VerifySignature(tt.order, tt.pay, tt.sig))
		})
	}
}

func TestSign_MatchesRazorpayScheme(t *testing.T) {
	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("order_1|pay_1"))
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), Sign("secret", "order_1", "pay_1"))
}

func TestSandboxGateway(t *testing.T) {
	gw := NewSandboxGateway("", "")
	assert.Equal(t, "rzp_test_sandbox", gw.KeyID())

	order, err := gw.CreateOrder(context.Background(), 49900, "", "rcpt")
	require.NoError(t, err)
	assert.Regexp(t, `^order_[0-9a-f]{14}$`, order.ID)
	assert.Equal(t, "INR", order.Currency)

	assert.True(t, gw.VerifySignature(order.ID, "pay_9", Sign("sandbox-secret", order.ID, "pay_9")))
	assert.False(t, gw.VerifySignature(order.ID, "pay_9", Sign("other", order.ID, "pay_9")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = gw.CreateOrder(ctx, 100, "INR", "r")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewGateway(t *testing.T) {
	gw, err := NewGateway(config.PaymentConfig{Provider: "sandbox"})
	require.NoError(t, err)
	assert.IsType(t, &SandboxGateway{}, gw)

	gw, err = NewGateway(config.PaymentConfig{Provider: "razorpay", KeyID: "k", KeySecret: "s"})
	require.NoError(t, err)
	assert.IsType(t, &RazorpayAdapter{}, gw)

	_, err = NewGateway(config.PaymentConfig{Provider: "razorpay"})
	assert.ErrorIs(t, err, ErrRazorpayMissingKeyID)

	_, err = NewGateway(config.PaymentConfig{Provider: "paypal"})
	assert.Error(t, err)
}
