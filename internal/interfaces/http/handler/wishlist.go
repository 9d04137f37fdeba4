package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/application/engagement"
)

// WishlistService is the wishlist use-case surface
type WishlistService interface {
	Add(ctx context.Context, customerID, productID uuid.UUID) (bool, error)
	Remove(ctx context.Context, customerID, productID uuid.UUID) error
	Status(ctx context.Context, customerID, productID uuid.UUID) (*engagement.WishlistStatusResponse, error)
	List(ctx context.Context, customerID uuid.UUID) ([]engagement.WishlistItemResponse, error)
}

// AddWishlistRequest names the product to save
type AddWishlistRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// WishlistHandler serves the signed-in customer's wishlist
type WishlistHandler struct {
	BaseHandler
	wishlist WishlistService
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlist WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist}
}

// List godoc
// @ID           listWishlist
// @Summary      List wishlist
// @Tags         wishlist
// @Produce      json
// @Success      200 {object} APIResponse[[]engagement.WishlistItemResponse]
// @Security     BearerAuth
// @Router       /wishlist [get]
func (h *WishlistHandler) List(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	resp, err := h.wishlist.List(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Add godoc
// @ID           addWishlistItem
// @Summary      Save a product
// @Description  Saving an already saved product succeeds with 200
// @Tags         wishlist
// @Accept       json
// @Produce      json
// @Param        request body AddWishlistRequest true "Product"
// @Success      201 {object} MessageResponse
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /wishlist [post]
func (h *WishlistHandler) Add(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	var req AddWishlistRequest
	if !h.bindJSON(c, &req) {
		return
	}
	created, err := h.wishlist.Add(c.Request.Context(), customerID, req.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if created {
		h.Message(c, http.StatusCreated, "Product added to wishlist", nil)
		return
	}
	h.Message(c, http.StatusOK, "Product already in wishlist", nil)
}

// Remove godoc
// @ID           removeWishlistItem
// @Summary      Unsave a product
// @Tags         wishlist
// @Param        product_id path string true "Product ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /wishlist/{product_id} [delete]
func (h *WishlistHandler) Remove(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	productID, ok := h.uuidParam(c, "product_id")
	if !ok {
		return
	}
	if err := h.wishlist.Remove(c.Request.Context(), customerID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Status godoc
// @ID           getWishlistStatus
// @Summary      Is a product saved
// @Tags         wishlist
// @Produce      json
// @Param        product_id path string true "Product ID"
// @Success      200 {object} APIResponse[engagement.WishlistStatusResponse]
// @Security     BearerAuth
// @Router       /wishlist/{product_id}/status [get]
func (h *WishlistHandler) Status(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	productID, ok := h.uuidParam(c, "product_id")
	if !ok {
		return
	}
	resp, err := h.wishlist.Status(c.Request.Context(), customerID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
