package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/identity"
	"github.com/renztrending/backend/internal/infrastructure/auth"
	"github.com/renztrending/backend/internal/infrastructure/config"
	"github.com/renztrending/backend/internal/interfaces/http/handler"
	"github.com/renztrending/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newAPI(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "renztrending-test",
		MaxRefreshCount:        1,
	})
	limiter := middleware.NewMemoryLimiter(100, time.Minute)
	t.Cleanup(limiter.Stop)

	h := Handlers{
		System:       handler.NewSystemHandler(okPinger{}, "test"),
		Auth:         handler.NewAuthHandler(nil),
		Account:      handler.NewAccountHandler(nil),
		Catalog:      handler.NewCatalogHandler(nil, nil, nil),
		Cart:         handler.NewCartHandler(nil),
		Order:        handler.NewOrderHandler(nil, nil),
		Review:       handler.NewReviewHandler(nil),
		Wishlist:     handler.NewWishlistHandler(nil),
		Newsletter:   handler.NewNewsletterHandler(nil),
		AdminCatalog: handler.NewAdminCatalogHandler(nil, nil, nil, nil),
		AdminOrder:   handler.NewAdminOrderHandler(nil),
		Report:       handler.NewReportHandler(nil, nil, nil),
	}
	g := Guards{
		Authenticated: middleware.Authenticate(middleware.AuthConfig{Tokens: jwtService}),
		Staff:         middleware.RequireStaff(),
		AuthAttempts:  middleware.AuthRateLimit(limiter),
	}

	engine := gin.New()
	RegisterAPI(NewRouter(engine), h, g).Setup()
	return engine, jwtService
}

func bearer(t *testing.T, jwtService *auth.JWTService, role string) string {
	t.Helper()
	pair, err := jwtService.IssuePair(auth.Subject{CustomerID: uuid.New(), Username: "asha", Role: role})
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func TestRegisterAPI_RouteTable(t *testing.T) {
	engine, _ := newAPI(t)

	registered := map[string]bool{}
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /api/v1/health",
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/refresh",
		"POST /api/v1/auth/logout",
		"PUT /api/v1/account/password",
		"DELETE /api/v1/account/billing-addresses/:id",
		"GET /api/v1/catalog/home",
		"GET /api/v1/catalog/products/:slug/reviews",
		"POST /api/v1/cart/items/:id/action",
		"POST /api/v1/checkout/cod",
		"POST /api/v1/checkout/gateway/verify",
		"PUT /api/v1/orders/:id/address",
		"POST /api/v1/reviews",
		"GET /api/v1/wishlist/:product_id/status",
		"POST /api/v1/newsletter/unsubscribe",
		"POST /api/v1/admin/products/:id/images",
		"POST /api/v1/admin/inventory/bulk",
		"POST /api/v1/admin/inventory/import",
		"POST /api/v1/admin/orders/bulk-status",
		"PUT /api/v1/admin/orders/:id/shipment",
		"GET /api/v1/admin/analytics/orders",
		"GET /api/v1/admin/exports/categories",
		"POST /api/v1/admin/newsletter/confirmations",
		"GET /api/v1/admin/audit",
	}
	for _, route := range expected {
		assert.True(t, registered[route], route)
	}
	assert.True(t, registered["POST "+ImageUploadRoute])
	assert.True(t, registered["POST "+StockImportRoute])
}

func TestRegisterAPI_Guards(t *testing.T) {
	engine, jwtService := newAPI(t)
	customer := bearer(t, jwtService, identity.RoleCustomer)
	staff := bearer(t, jwtService, identity.RoleStaff)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"health is public", http.MethodGet, "/api/v1/health", "", http.StatusOK},
		{"cart needs a token", http.MethodGet, "/api/v1/cart", "", http.StatusUnauthorized},
		{"orders need a token", http.MethodGet, "/api/v1/orders", "", http.StatusUnauthorized},
		{"logout needs a token", http.MethodPost, "/api/v1/auth/logout", "", http.StatusUnauthorized},
		{"admin needs a token", http.MethodGet, "/api/v1/admin/orders", "", http.StatusUnauthorized},
		{"admin refuses customers", http.MethodGet, "/api/v1/admin/orders", customer, http.StatusForbidden},
		{"admin export refuses customers", http.MethodGet, "/api/v1/admin/exports/orders", customer, http.StatusForbidden},
		{"staff reach admin handlers", http.MethodGet, "/api/v1/admin/audit?limit=0", staff, http.StatusBadRequest},
		{"customers reach their handlers", http.MethodDelete, "/api/v1/wishlist/not-a-uuid", customer, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", tt.token)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
