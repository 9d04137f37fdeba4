package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/renztrending/backend/internal/application/order"
)

// AdminOrderService is the order management use-case surface
type AdminOrderService interface {
	ListOrders(ctx context.Context, f orderapp.OrderListFilter) ([]orderapp.OrderResponse, int64, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*orderapp.OrderResponse, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*orderapp.OrderResponse, error)
	BulkUpdateStatus(ctx context.Context, req orderapp.BulkStatusRequest) (*orderapp.BulkStatusResponse, error)
	UpdateTracking(ctx context.Context, orderID uuid.UUID, req orderapp.TrackingRequest) (*orderapp.OrderResponse, error)
	UpdateShipment(ctx context.Context, orderID uuid.UUID, req orderapp.ShipmentRequest) (*orderapp.OrderResponse, error)
}

// AdminOrderHandler serves order management for staff
type AdminOrderHandler struct {
	BaseHandler
	orders AdminOrderService
}

// NewAdminOrderHandler creates a new AdminOrderHandler
func NewAdminOrderHandler(orders AdminOrderService) *AdminOrderHandler {
	return &AdminOrderHandler{orders: orders}
}

// ListOrders godoc
// @ID           adminListOrders
// @Summary      List orders
// @Tags         admin
// @Produce      json
// @Param        search query string false "Order number, customer or tracking number"
// @Param        status query string false "Status filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]orderapp.OrderResponse]
// @Security     BearerAuth
// @Router       /admin/orders [get]
func (h *AdminOrderHandler) ListOrders(c *gin.Context) {
	var f orderapp.OrderListFilter
	if !h.bindQuery(c, &f) {
		return
	}
	items, total, err := h.orders.ListOrders(c.Request.Context(), f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, f.Page, f.PageSize)
}

// GetOrder godoc
// @ID           adminGetOrder
// @Summary      Get an order
// @Tags         admin
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} APIResponse[orderapp.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id} [get]
func (h *AdminOrderHandler) GetOrder(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus godoc
// @ID           adminUpdateOrderStatus
// @Summary      Move an order to a new status
// @Description  Only transitions allowed by the order lifecycle are accepted
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body orderapp.UpdateStatusRequest true "Status"
// @Success      200 {object} APIResponse[orderapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id}/status [put]
func (h *AdminOrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req orderapp.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// BulkUpdateStatus godoc
// @ID           adminBulkUpdateOrderStatus
// @Summary      Move many orders to a status
// @Description  Orders that cannot make the transition are skipped and reported
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body orderapp.BulkStatusRequest true "Orders and status"
// @Success      200 {object} APIResponse[orderapp.BulkStatusResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/bulk-status [post]
func (h *AdminOrderHandler) BulkUpdateStatus(c *gin.Context) {
	var req orderapp.BulkStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.orders.BulkUpdateStatus(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateTracking godoc
// @ID           adminUpdateOrderTracking
// @Summary      Set tracking details
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body orderapp.TrackingRequest true "Tracking"
// @Success      200 {object} APIResponse[orderapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id}/tracking [put]
func (h *AdminOrderHandler) UpdateTracking(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req orderapp.TrackingRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.orders.UpdateTracking(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateShipment godoc
// @ID           adminUpdateOrderShipment
// @Summary      Record courier shipment identifiers
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body orderapp.ShipmentRequest true "Shipment"
// @Success      200 {object} APIResponse[orderapp.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id}/shipment [put]
func (h *AdminOrderHandler) UpdateShipment(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req orderapp.ShipmentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.orders.UpdateShipment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
