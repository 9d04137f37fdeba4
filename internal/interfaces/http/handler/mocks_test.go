package handler

import (
	"context"
	"io"

	"github.com/google/uuid"
	cartapp "github.com/renztrending/backend/internal/application/cart"
	catalogapp "github.com/renztrending/backend/internal/application/catalog"
	"github.com/renztrending/backend/internal/application/engagement"
	"github.com/renztrending/backend/internal/application/identity"
	orderapp "github.com/renztrending/backend/internal/application/order"
	"github.com/renztrending/backend/internal/application/report"
	"github.com/renztrending/backend/internal/domain/audit"
	"github.com/stretchr/testify/mock"
)

// MockAuthService implements AuthService for testing
type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Register(ctx context.Context, req identity.RegisterRequest) (*identity.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.TokenResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req identity.LoginRequest) (*identity.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.TokenResponse), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, req identity.RefreshRequest) (*identity.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.TokenResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, in identity.LogoutInput) error {
	return m.Called(ctx, in).Error(0)
}

// MockProductService implements ProductService for testing
type MockProductService struct{ mock.Mock }

func (m *MockProductService) List(ctx context.Context, f catalogapp.ProductListFilter) ([]catalogapp.ProductResponse, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]catalogapp.ProductResponse)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockProductService) GetBySlug(ctx context.Context, slug string) (*catalogapp.ProductDetailResponse, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductDetailResponse), args.Error(1)
}

func (m *MockProductService) Home(ctx context.Context) (*catalogapp.HomeResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.HomeResponse), args.Error(1)
}

func (m *MockProductService) Related(ctx context.Context, slug string) ([]catalogapp.ProductResponse, error) {
	args := m.Called(ctx, slug)
	items, _ := args.Get(0).([]catalogapp.ProductResponse)
	return items, args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductDetailResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductDetailResponse), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateProductRequest) (*catalogapp.ProductDetailResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductDetailResponse), args.Error(1)
}

func (m *MockProductService) AddVariant(ctx context.Context, productID uuid.UUID, req catalogapp.AddVariantRequest) (*catalogapp.VariantResponse, error) {
	args := m.Called(ctx, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.VariantResponse), args.Error(1)
}

func (m *MockProductService) UploadImage(ctx context.Context, productID uuid.UUID, req catalogapp.UploadImageRequest) (*catalogapp.ImageResponse, error) {
	args := m.Called(ctx, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ImageResponse), args.Error(1)
}

func (m *MockProductService) CreateGroup(ctx context.Context, req catalogapp.CreateGroupRequest) (*catalogapp.GroupResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.GroupResponse), args.Error(1)
}

// MockCategoryService implements CategoryService for testing
type MockCategoryService struct{ mock.Mock }

func (m *MockCategoryService) Create(ctx context.Context, req catalogapp.CreateCategoryRequest) (*catalogapp.CategoryResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) List(ctx context.Context) ([]catalogapp.CategoryResponse, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]catalogapp.CategoryResponse)
	return items, args.Error(1)
}

func (m *MockCategoryService) Tree(ctx context.Context) ([]catalogapp.CategoryTreeNode, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]catalogapp.CategoryTreeNode)
	return items, args.Error(1)
}

// MockReviewService implements ReviewService and ProductReviewLister for testing
type MockReviewService struct{ mock.Mock }

func (m *MockReviewService) Create(ctx context.Context, customerID uuid.UUID, req engagement.CreateReviewRequest) (*engagement.ReviewResponse, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) ListForProductSlug(ctx context.Context, slug string, f engagement.ReviewListFilter) (*engagement.ReviewListResponse, error) {
	args := m.Called(ctx, slug, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.ReviewListResponse), args.Error(1)
}

// MockInventoryService implements InventoryService for testing
type MockInventoryService struct{ mock.Mock }

func (m *MockInventoryService) Summary(ctx context.Context) (*catalogapp.InventorySummaryResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.InventorySummaryResponse), args.Error(1)
}

func (m *MockInventoryService) UpdateStock(ctx context.Context, productID uuid.UUID, req catalogapp.StockUpdateRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockInventoryService) BulkUpdate(ctx context.Context, req catalogapp.BulkStockUpdateRequest) (*catalogapp.BulkStockUpdateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.BulkStockUpdateResponse), args.Error(1)
}

func (m *MockInventoryService) ImportStock(ctx context.Context, r io.Reader) (*catalogapp.StockImportResponse, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.StockImportResponse), args.Error(1)
}

// MockCartService implements CartService for testing
type MockCartService struct{ mock.Mock }

func (m *MockCartService) GetCart(ctx context.Context, customerID uuid.UUID) (*cartapp.CartResponse, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartapp.CartResponse), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, customerID uuid.UUID, req cartapp.AddCartItemRequest) (*cartapp.CartResponse, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartapp.CartResponse), args.Error(1)
}

func (m *MockCartService) UpdateItem(ctx context.Context, customerID, itemID uuid.UUID, req cartapp.UpdateCartItemRequest) (*cartapp.CartResponse, error) {
	args := m.Called(ctx, customerID, itemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartapp.CartResponse), args.Error(1)
}

func (m *MockCartService) ApplyAction(ctx context.Context, customerID, itemID uuid.UUID, code string) (*cartapp.CartResponse, error) {
	args := m.Called(ctx, customerID, itemID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartapp.CartResponse), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) error {
	return m.Called(ctx, customerID, itemID).Error(0)
}

// MockCheckoutService implements CheckoutService for testing
type MockCheckoutService struct{ mock.Mock }

func (m *MockCheckoutService) PlaceCODOrder(ctx context.Context, customerID uuid.UUID, req orderapp.CheckoutRequest) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

func (m *MockCheckoutService) BuyNow(ctx context.Context, customerID uuid.UUID, req orderapp.BuyNowRequest) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

func (m *MockCheckoutService) CreateGatewayOrder(ctx context.Context, customerID uuid.UUID) (*orderapp.GatewayOrderResponse, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.GatewayOrderResponse), args.Error(1)
}

func (m *MockCheckoutService) VerifyGatewayPayment(ctx context.Context, customerID uuid.UUID, req orderapp.VerifyPaymentRequest) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

// MockOrderService implements OrderService for testing
type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) GetOrder(ctx context.Context, customerID, orderID uuid.UUID) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, customerID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

func (m *MockOrderService) ListCustomerOrders(ctx context.Context, customerID uuid.UUID, f orderapp.OrderListFilter) ([]orderapp.OrderResponse, int64, error) {
	args := m.Called(ctx, customerID, f)
	items, _ := args.Get(0).([]orderapp.OrderResponse)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderService) UpdateShippingAddress(ctx context.Context, customerID, orderID, addressID uuid.UUID) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, customerID, orderID, addressID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

func (m *MockOrderService) CancelOrder(ctx context.Context, customerID, orderID uuid.UUID) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, customerID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

// MockAdminOrderService implements AdminOrderService for testing
type MockAdminOrderService struct{ mock.Mock }

func (m *MockAdminOrderService) ListOrders(ctx context.Context, f orderapp.OrderListFilter) ([]orderapp.OrderResponse, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]orderapp.OrderResponse)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockAdminOrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

func (m *MockAdminOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

func (m *MockAdminOrderService) BulkUpdateStatus(ctx context.Context, req orderapp.BulkStatusRequest) (*orderapp.BulkStatusResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.BulkStatusResponse), args.Error(1)
}

func (m *MockAdminOrderService) UpdateTracking(ctx context.Context, orderID uuid.UUID, req orderapp.TrackingRequest) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, orderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

func (m *MockAdminOrderService) UpdateShipment(ctx context.Context, orderID uuid.UUID, req orderapp.ShipmentRequest) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, orderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

// MockWishlistService implements WishlistService for testing
type MockWishlistService struct{ mock.Mock }

func (m *MockWishlistService) Add(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, customerID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistService) Remove(ctx context.Context, customerID, productID uuid.UUID) error {
	return m.Called(ctx, customerID, productID).Error(0)
}

func (m *MockWishlistService) Status(ctx context.Context, customerID, productID uuid.UUID) (*engagement.WishlistStatusResponse, error) {
	args := m.Called(ctx, customerID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.WishlistStatusResponse), args.Error(1)
}

func (m *MockWishlistService) List(ctx context.Context, customerID uuid.UUID) ([]engagement.WishlistItemResponse, error) {
	args := m.Called(ctx, customerID)
	items, _ := args.Get(0).([]engagement.WishlistItemResponse)
	return items, args.Error(1)
}

// MockNewsletterService implements NewsletterService for testing
type MockNewsletterService struct{ mock.Mock }

func (m *MockNewsletterService) Subscribe(ctx context.Context, email string) (*engagement.SubscriptionResponse, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.SubscriptionResponse), args.Error(1)
}

func (m *MockNewsletterService) Unsubscribe(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockNewsletterService) SendBulkConfirmation(ctx context.Context, ids []uuid.UUID) (*engagement.BulkConfirmationResponse, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.BulkConfirmationResponse), args.Error(1)
}

func (m *MockNewsletterService) List(ctx context.Context, f engagement.SubscriptionListFilter) ([]engagement.SubscriptionResponse, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]engagement.SubscriptionResponse)
	return items, args.Get(1).(int64), args.Error(2)
}

// MockReportServices implements AnalyticsService, ExportService and AuditReader for testing
type MockReportServices struct{ mock.Mock }

func (m *MockReportServices) OrderAnalytics(ctx context.Context) (*report.OrderAnalyticsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.OrderAnalyticsResponse), args.Error(1)
}

func (m *MockReportServices) WriteOrdersCSV(ctx context.Context, w io.Writer, status string) error {
	args := m.Called(ctx, w, status)
	if body, ok := args.Get(1).(string); ok {
		_, _ = io.WriteString(w, body)
	}
	return args.Error(0)
}

func (m *MockReportServices) WriteCategoriesCSV(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	if body, ok := args.Get(1).(string); ok {
		_, _ = io.WriteString(w, body)
	}
	return args.Error(0)
}

func (m *MockReportServices) Recent(ctx context.Context, q audit.Query) ([]audit.Entry, error) {
	args := m.Called(ctx, q)
	entries, _ := args.Get(0).([]audit.Entry)
	return entries, args.Error(1)
}

// MockProfileService implements ProfileService for testing
type MockProfileService struct{ mock.Mock }

func (m *MockProfileService) GetProfile(ctx context.Context, customerID uuid.UUID) (*identity.ProfileResponse, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.ProfileResponse), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, customerID uuid.UUID, req identity.UpdateProfileRequest) (*identity.ProfileResponse, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.ProfileResponse), args.Error(1)
}

func (m *MockProfileService) ChangePassword(ctx context.Context, customerID uuid.UUID, req identity.ChangePasswordRequest) error {
	return m.Called(ctx, customerID, req).Error(0)
}

func (m *MockProfileService) ListShippingAddresses(ctx context.Context, customerID uuid.UUID) ([]identity.ShippingAddressResponse, error) {
	args := m.Called(ctx, customerID)
	items, _ := args.Get(0).([]identity.ShippingAddressResponse)
	return items, args.Error(1)
}

func (m *MockProfileService) CreateShippingAddress(ctx context.Context, customerID uuid.UUID, req identity.ShippingAddressRequest) (*identity.ShippingAddressResponse, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.ShippingAddressResponse), args.Error(1)
}

func (m *MockProfileService) UpdateShippingAddress(ctx context.Context, customerID, addressID uuid.UUID, req identity.ShippingAddressRequest) (*identity.ShippingAddressResponse, error) {
	args := m.Called(ctx, customerID, addressID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.ShippingAddressResponse), args.Error(1)
}

func (m *MockProfileService) DeleteShippingAddress(ctx context.Context, customerID, addressID uuid.UUID) error {
	return m.Called(ctx, customerID, addressID).Error(0)
}

func (m *MockProfileService) ListBillingAddresses(ctx context.Context, customerID uuid.UUID) ([]identity.BillingAddressResponse, error) {
	args := m.Called(ctx, customerID)
	items, _ := args.Get(0).([]identity.BillingAddressResponse)
	return items, args.Error(1)
}

func (m *MockProfileService) CreateBillingAddress(ctx context.Context, customerID uuid.UUID, req identity.BillingAddressRequest) (*identity.BillingAddressResponse, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.BillingAddressResponse), args.Error(1)
}

func (m *MockProfileService) DeleteBillingAddress(ctx context.Context, customerID, addressID uuid.UUID) error {
	return m.Called(ctx, customerID, addressID).Error(0)
}

// MockAttributeService implements AttributeService for testing
type MockAttributeService struct{ mock.Mock }

func (m *MockAttributeService) ListColors(ctx context.Context) ([]catalogapp.ColorResponse, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]catalogapp.ColorResponse)
	return items, args.Error(1)
}

func (m *MockAttributeService) CreateColor(ctx context.Context, req catalogapp.CreateColorRequest) (*catalogapp.ColorResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ColorResponse), args.Error(1)
}

func (m *MockAttributeService) ListSizes(ctx context.Context) ([]catalogapp.SizeResponse, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]catalogapp.SizeResponse)
	return items, args.Error(1)
}

func (m *MockAttributeService) CreateSize(ctx context.Context, req catalogapp.CreateSizeRequest) (*catalogapp.SizeResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.SizeResponse), args.Error(1)
}
