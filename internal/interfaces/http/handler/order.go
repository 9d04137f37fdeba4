package handler

import (
	"context"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/renztrending/backend/internal/application/order"
	"github.com/renztrending/backend/internal/interfaces/http/middleware"
)

// CheckoutService is the checkout use-case surface used by OrderHandler
type CheckoutService interface {
	PlaceCODOrder(ctx context.Context, customerID uuid.UUID, req orderapp.CheckoutRequest) (*orderapp.OrderResponse, error)
	BuyNow(ctx context.Context, customerID uuid.UUID, req orderapp.BuyNowRequest) (*orderapp.OrderResponse, error)
	CreateGatewayOrder(ctx context.Context, customerID uuid.UUID) (*orderapp.GatewayOrderResponse, error)
	VerifyGatewayPayment(ctx context.Context, customerID uuid.UUID, req orderapp.VerifyPaymentRequest) (*orderapp.OrderResponse, error)
}

// OrderService is the customer order use-case surface
type OrderService interface {
	GetOrder(ctx context.Context, customerID, orderID uuid.UUID) (*orderapp.OrderResponse, error)
	ListCustomerOrders(ctx context.Context, customerID uuid.UUID, f orderapp.OrderListFilter) ([]orderapp.OrderResponse, int64, error)
	UpdateShippingAddress(ctx context.Context, customerID, orderID, addressID uuid.UUID) (*orderapp.OrderResponse, error)
	CancelOrder(ctx context.Context, customerID, orderID uuid.UUID) (*orderapp.OrderResponse, error)
}

// OrderHandler serves checkout and the customer's order history
type OrderHandler struct {
	BaseHandler
	checkout CheckoutService
	orders   OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(checkout CheckoutService, orders OrderService) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders}
}

// PlaceCODOrder godoc
// @ID           checkoutCOD
// @Summary      Cash on delivery checkout
// @Description  Turns the whole cart into one order, decrements stock and empties the cart
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body orderapp.CheckoutRequest false "Addresses"
// @Success      201 {object} APIResponse[orderapp.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /checkout/cod [post]
func (h *OrderHandler) PlaceCODOrder(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	// The body is optional; without one the default addresses are used
	var req orderapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middleware.HandleValidationError(c, err)
		return
	}
	resp, err := h.checkout.PlaceCODOrder(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// BuyNow godoc
// @ID           checkoutBuyNow
// @Summary      Buy a single product
// @Description  Places a cash on delivery order for one product without touching the cart
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body orderapp.BuyNowRequest true "Product"
// @Success      201 {object} APIResponse[orderapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /checkout/buy-now [post]
func (h *OrderHandler) BuyNow(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	var req orderapp.BuyNowRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.checkout.BuyNow(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// CreateGatewayOrder godoc
// @ID           checkoutCreateGatewayOrder
// @Summary      Start an online payment
// @Description  Creates a gateway order for the cart total in minor units
// @Tags         checkout
// @Produce      json
// @Success      201 {object} APIResponse[orderapp.GatewayOrderResponse]
// @Failure      422 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /checkout/gateway/orders [post]
func (h *OrderHandler) CreateGatewayOrder(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	resp, err := h.checkout.CreateGatewayOrder(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// VerifyGatewayPayment godoc
// @ID           checkoutVerifyGatewayPayment
// @Summary      Confirm an online payment
// @Description  Verifies the payment signature and places the paid order
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body orderapp.VerifyPaymentRequest true "Gateway callback fields"
// @Success      201 {object} APIResponse[orderapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /checkout/gateway/verify [post]
func (h *OrderHandler) VerifyGatewayPayment(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	var req orderapp.VerifyPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.checkout.VerifyGatewayPayment(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListOrders godoc
// @ID           listMyOrders
// @Summary      Order history
// @Tags         orders
// @Produce      json
// @Param        search query string false "Order number search"
// @Param        status query string false "Status filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]orderapp.OrderResponse]
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	var f orderapp.OrderListFilter
	if !h.bindQuery(c, &f) {
		return
	}
	items, total, err := h.orders.ListCustomerOrders(c.Request.Context(), customerID, f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, f.Page, f.PageSize)
}

// GetOrder godoc
// @ID           getMyOrder
// @Summary      Order detail
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} APIResponse[orderapp.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	orderID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.orders.GetOrder(c.Request.Context(), customerID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateAddress godoc
// @ID           updateMyOrderAddress
// @Summary      Change the delivery address
// @Description  Allowed while the order has not shipped
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body orderapp.UpdateAddressRequest true "Address"
// @Success      200 {object} APIResponse[orderapp.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/address [put]
func (h *OrderHandler) UpdateAddress(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	orderID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req orderapp.UpdateAddressRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.orders.UpdateShippingAddress(c.Request.Context(), customerID, orderID, req.AddressID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CancelOrder godoc
// @ID           cancelMyOrder
// @Summary      Cancel an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} APIResponse[orderapp.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	orderID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.orders.CancelOrder(c.Request.Context(), customerID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
