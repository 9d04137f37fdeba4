package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cartapp "github.com/renztrending/backend/internal/application/cart"
)

// CartService is the cart use-case surface used by CartHandler
type CartService interface {
	GetCart(ctx context.Context, customerID uuid.UUID) (*cartapp.CartResponse, error)
	AddItem(ctx context.Context, customerID uuid.UUID, req cartapp.AddCartItemRequest) (*cartapp.CartResponse, error)
	UpdateItem(ctx context.Context, customerID, itemID uuid.UUID, req cartapp.UpdateCartItemRequest) (*cartapp.CartResponse, error)
	ApplyAction(ctx context.Context, customerID, itemID uuid.UUID, code string) (*cartapp.CartResponse, error)
	RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) error
}

// CartHandler serves the signed-in customer's cart
type CartHandler struct {
	BaseHandler
	carts CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// GetCart godoc
// @ID           getCart
// @Summary      Get cart
// @Tags         cart
// @Produce      json
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	resp, err := h.carts.GetCart(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem godoc
// @ID           addCartItem
// @Summary      Add to cart
// @Description  Adds units to the line for this product and size, capped at 20 per line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body cartapp.AddCartItemRequest true "Item"
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	var req cartapp.AddCartItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.carts.AddItem(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateItem godoc
// @ID           updateCartItem
// @Summary      Set a line's quantity
// @Description  A quantity of zero, or remove=true, deletes the line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        id path string true "Cart item ID"
// @Param        request body cartapp.UpdateCartItemRequest true "Quantity"
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cart/items/{id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	itemID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req cartapp.UpdateCartItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.carts.UpdateItem(c.Request.Context(), customerID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ApplyAction godoc
// @ID           applyCartAction
// @Summary      Quick cart action
// @Description  a adds one unit, r removes one unit, d deletes the line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        id path string true "Cart item ID"
// @Param        request body cartapp.CartActionRequest true "Action"
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cart/items/{id}/action [post]
func (h *CartHandler) ApplyAction(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	itemID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req cartapp.CartActionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.carts.ApplyAction(c.Request.Context(), customerID, itemID, req.Action)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem godoc
// @ID           removeCartItem
// @Summary      Remove a cart line
// @Tags         cart
// @Param        id path string true "Cart item ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	itemID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.carts.RemoveItem(c.Request.Context(), customerID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
