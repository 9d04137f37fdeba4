package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/application/engagement"
)

// ReviewService posts product reviews
type ReviewService interface {
	Create(ctx context.Context, customerID uuid.UUID, req engagement.CreateReviewRequest) (*engagement.ReviewResponse, error)
}

// ReviewHandler serves review submission
type ReviewHandler struct {
	BaseHandler
	reviews ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviews ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Create godoc
// @ID           createReview
// @Summary      Review a product
// @Description  One review per customer and product, rated 1 to 5
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        request body engagement.CreateReviewRequest true "Review"
// @Success      201 {object} APIResponse[engagement.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	var req engagement.CreateReviewRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.reviews.Create(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
