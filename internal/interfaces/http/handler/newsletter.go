package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/application/engagement"
)

// NewsletterService is the newsletter use-case surface
type NewsletterService interface {
	Subscribe(ctx context.Context, email string) (*engagement.SubscriptionResponse, error)
	Unsubscribe(ctx context.Context, email string) error
	SendBulkConfirmation(ctx context.Context, ids []uuid.UUID) (*engagement.BulkConfirmationResponse, error)
	List(ctx context.Context, f engagement.SubscriptionListFilter) ([]engagement.SubscriptionResponse, int64, error)
}

// NewsletterHandler serves public subscription and the admin mailing tools
type NewsletterHandler struct {
	BaseHandler
	newsletter NewsletterService
}

// NewNewsletterHandler creates a new NewsletterHandler
func NewNewsletterHandler(newsletter NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletter: newsletter}
}

// Subscribe godoc
// @ID           subscribeNewsletter
// @Summary      Subscribe to the newsletter
// @Description  Subscribing again reactivates the subscription. The confirmation email is sent in the background.
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        request body engagement.SubscribeRequest true "Email"
// @Success      201 {object} APIResponse[engagement.SubscriptionResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /newsletter/subscribe [post]
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req engagement.SubscribeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.newsletter.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, http.StatusCreated, "Subscribed to the newsletter", resp)
}

// Unsubscribe godoc
// @ID           unsubscribeNewsletter
// @Summary      Unsubscribe from the newsletter
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        request body engagement.SubscribeRequest true "Email"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /newsletter/unsubscribe [post]
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req engagement.SubscribeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.newsletter.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, http.StatusOK, "Unsubscribed from the newsletter", nil)
}

// ListSubscriptions godoc
// @ID           adminListSubscriptions
// @Summary      List newsletter subscriptions
// @Tags         admin
// @Produce      json
// @Param        search query string false "Email search"
// @Param        active query bool false "Active filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]engagement.SubscriptionResponse]
// @Security     BearerAuth
// @Router       /admin/newsletter/subscriptions [get]
func (h *NewsletterHandler) ListSubscriptions(c *gin.Context) {
	var f engagement.SubscriptionListFilter
	if !h.bindQuery(c, &f) {
		return
	}
	items, total, err := h.newsletter.List(c.Request.Context(), f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, f.Page, f.PageSize)
}

// SendConfirmations godoc
// @ID           adminSendNewsletterConfirmations
// @Summary      Re-send confirmation emails
// @Description  Queues a confirmation email for each selected active subscription
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body engagement.BulkConfirmationRequest true "Subscriptions"
// @Success      202 {object} APIResponse[engagement.BulkConfirmationResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/newsletter/confirmations [post]
func (h *NewsletterHandler) SendConfirmations(c *gin.Context) {
	var req engagement.BulkConfirmationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.newsletter.SendBulkConfirmation(c.Request.Context(), req.SubscriptionIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, APIResponse[*engagement.BulkConfirmationResponse]{Success: true, Data: resp})
}
