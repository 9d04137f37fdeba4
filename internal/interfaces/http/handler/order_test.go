package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/renztrending/backend/internal/application/order"
	"github.com/renztrending/backend/internal/domain/payment"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/renztrending/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	checkout   *MockCheckoutService
	orders     *MockOrderService
	customerID uuid.UUID
	router     *gin.Engine
}

func setupOrderRouter() orderFixture {
	f := orderFixture{
		checkout:   new(MockCheckoutService),
		orders:     new(MockOrderService),
		customerID: uuid.New(),
	}
	h := NewOrderHandler(f.checkout, f.orders)
	f.router = gin.New()
	user := f.router.Group("", withCustomer(f.customerID))
	user.POST("/checkout/cod", h.PlaceCODOrder)
	user.POST("/checkout/buy-now", h.BuyNow)
	user.POST("/checkout/gateway/orders", h.CreateGatewayOrder)
	user.POST("/checkout/gateway/verify", h.VerifyGatewayPayment)
	user.GET("/orders", h.ListOrders)
	user.GET("/orders/:id", h.GetOrder)
	user.PUT("/orders/:id/address", h.UpdateAddress)
	user.POST("/orders/:id/cancel", h.CancelOrder)
	return f
}

func orderResponseFixture(status string) *orderapp.OrderResponse {
	return &orderapp.OrderResponse{ID: uuid.New(), OrderNumber: "RT-1001", Status: status}
}

func TestOrderHandler_PlaceCODOrder(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		f := setupOrderRouter()
		f.checkout.On("PlaceCODOrder", mock.Anything, f.customerID, orderapp.CheckoutRequest{}).
			Return(orderResponseFixture("pending"), nil)

		w := doJSON(f.router, http.MethodPost, "/checkout/cod", nil)

		assert.Equal(t, http.StatusCreated, w.Code)
		f.checkout.AssertExpectations(t)
	})

	t.Run("with address", func(t *testing.T) {
		f := setupOrderRouter()
		addressID := uuid.New()
		f.checkout.On("PlaceCODOrder", mock.Anything, f.customerID, orderapp.CheckoutRequest{ShippingAddressID: &addressID}).
			Return(orderResponseFixture("pending"), nil)

		w := doJSON(f.router, http.MethodPost, "/checkout/cod", map[string]string{"shipping_address_id": addressID.String()})

		assert.Equal(t, http.StatusCreated, w.Code)
		f.checkout.AssertExpectations(t)
	})

	t.Run("empty cart", func(t *testing.T) {
		f := setupOrderRouter()
		f.checkout.On("PlaceCODOrder", mock.Anything, f.customerID, mock.Anything).
			Return(nil, shared.NewDomainError(shared.CodeInvalidState, "Your cart is empty"))

		w := doJSON(f.router, http.MethodPost, "/checkout/cod", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "Your cart is empty", decodeResponse(t, w).Error.Message)
	})
}

func TestOrderHandler_BuyNow(t *testing.T) {
	f := setupOrderRouter()
	productID := uuid.New()
	req := orderapp.BuyNowRequest{ProductID: productID, Size: "L", Quantity: 1}
	f.checkout.On("BuyNow", mock.Anything, f.customerID, req).Return(orderResponseFixture("pending"), nil)

	w := doJSON(f.router, http.MethodPost, "/checkout/buy-now", req)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(f.router, http.MethodPost, "/checkout/buy-now", map[string]string{"size": "L"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.checkout.AssertNumberOfCalls(t, "BuyNow", 1)
}

func TestOrderHandler_GatewayFlow(t *testing.T) {
	f := setupOrderRouter()
	f.checkout.On("CreateGatewayOrder", mock.Anything, f.customerID).Return(&orderapp.GatewayOrderResponse{
		OrderID: "order_abc", Key: "rzp_test", Amount: 99800, Currency: "INR",
	}, nil)

	w := doJSON(f.router, http.MethodPost, "/checkout/gateway/orders", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"amount":99800`)

	verify := orderapp.VerifyPaymentRequest{GatewayOrderID: "order_abc", PaymentID: "pay_1", Signature: "bad"}
	f.checkout.On("VerifyGatewayPayment", mock.Anything, f.customerID, verify).Return(nil, payment.ErrVerificationFailed)

	w = doJSON(f.router, http.MethodPost, "/checkout/gateway/verify", verify)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodePaymentVerification, decodeResponse(t, w).Error.Code)
}

func TestOrderHandler_GatewayUnavailable(t *testing.T) {
	f := setupOrderRouter()
	f.checkout.On("CreateGatewayOrder", mock.Anything, f.customerID).
		Return(nil, shared.NewDomainError(shared.CodePaymentGateway, "Payment gateway is unavailable, please try again"))

	w := doJSON(f.router, http.MethodPost, "/checkout/gateway/orders", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, dto.ErrCodePaymentGateway, decodeResponse(t, w).Error.Code)
}

func TestOrderHandler_ListOrders(t *testing.T) {
	f := setupOrderRouter()
	filter := orderapp.OrderListFilter{Status: "shipped", Page: 1, PageSize: 10}
	f.orders.On("ListCustomerOrders", mock.Anything, f.customerID, filter).
		Return([]orderapp.OrderResponse{*orderResponseFixture("shipped")}, int64(1), nil)

	w := doJSON(f.router, http.MethodGet, "/orders?status=shipped&page=1&page_size=10", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 10, resp.Meta.PageSize)
}

func TestOrderHandler_GetOrder(t *testing.T) {
	f := setupOrderRouter()
	orderID := uuid.New()
	f.orders.On("GetOrder", mock.Anything, f.customerID, orderID).Return(nil, shared.ErrNotFound)

	w := doJSON(f.router, http.MethodGet, "/orders/"+orderID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_UpdateAddress(t *testing.T) {
	f := setupOrderRouter()
	orderID, addressID := uuid.New(), uuid.New()
	f.orders.On("UpdateShippingAddress", mock.Anything, f.customerID, orderID, addressID).
		Return(nil, shared.NewDomainError(shared.CodeInvalidState, "Address can no longer be changed"))

	w := doJSON(f.router, http.MethodPut, "/orders/"+orderID.String()+"/address", map[string]string{"address_id": addressID.String()})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(f.router, http.MethodPut, "/orders/"+orderID.String()+"/address", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_CancelOrder(t *testing.T) {
	f := setupOrderRouter()
	orderID := uuid.New()
	f.orders.On("CancelOrder", mock.Anything, f.customerID, orderID).Return(orderResponseFixture("cancelled"), nil)

	w := doJSON(f.router, http.MethodPost, "/orders/"+orderID.String()+"/cancel", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"cancelled"`)
}
