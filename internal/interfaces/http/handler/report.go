package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/renztrending/backend/internal/application/report"
	"github.com/renztrending/backend/internal/domain/audit"
)

// AnalyticsService computes the admin order dashboard
type AnalyticsService interface {
	OrderAnalytics(ctx context.Context) (*report.OrderAnalyticsResponse, error)
}

// ExportService renders CSV exports
type ExportService interface {
	WriteOrdersCSV(ctx context.Context, w io.Writer, status string) error
	WriteCategoriesCSV(ctx context.Context, w io.Writer) error
}

// AuditReader reads the admin audit trail
type AuditReader interface {
	Recent(ctx context.Context, q audit.Query) ([]audit.Entry, error)
}

// ReportHandler serves analytics, CSV exports and the audit trail
type ReportHandler struct {
	BaseHandler
	analytics AnalyticsService
	exports   ExportService
	audit     AuditReader
	now       func() time.Time
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(analytics AnalyticsService, exports ExportService, auditLog AuditReader) *ReportHandler {
	return &ReportHandler{
		analytics: analytics,
		exports:   exports,
		audit:     auditLog,
		now:       time.Now,
	}
}

// OrderAnalytics godoc
// @ID           adminOrderAnalytics
// @Summary      Order analytics
// @Description  All-time and 30 day totals, status breakdown and best sellers
// @Tags         admin
// @Produce      json
// @Success      200 {object} APIResponse[report.OrderAnalyticsResponse]
// @Security     BearerAuth
// @Router       /admin/analytics/orders [get]
func (h *ReportHandler) OrderAnalytics(c *gin.Context) {
	resp, err := h.analytics.OrderAnalytics(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ExportOrders godoc
// @ID           adminExportOrders
// @Summary      Export orders as CSV
// @Tags         admin
// @Produce      text/csv
// @Param        status query string false "Status filter"
// @Success      200 {file} file
// @Security     BearerAuth
// @Router       /admin/exports/orders [get]
func (h *ReportHandler) ExportOrders(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exports.WriteOrdersCSV(c.Request.Context(), &buf, c.Query("status")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.attachment(c, "orders", buf.Bytes())
}

// ExportCategories godoc
// @ID           adminExportCategories
// @Summary      Export categories as CSV
// @Tags         admin
// @Produce      text/csv
// @Success      200 {file} file
// @Security     BearerAuth
// @Router       /admin/exports/categories [get]
func (h *ReportHandler) ExportCategories(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exports.WriteCategoriesCSV(c.Request.Context(), &buf); err != nil {
		h.HandleError(c, err)
		return
	}
	h.attachment(c, "categories", buf.Bytes())
}

// attachment serves a rendered export as a dated CSV download
func (h *ReportHandler) attachment(c *gin.Context, name string, body []byte) {
	filename := fmt.Sprintf("%s_%s.csv", name, h.now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
}

// RecentAudit godoc
// @ID           adminRecentAudit
// @Summary      Recent audit entries
// @Tags         admin
// @Produce      json
// @Param        entity_type query string false "order or product"
// @Param        entity_id query string false "Entity ID"
// @Param        limit query int false "Maximum entries" default(50)
// @Success      200 {object} APIResponse[[]audit.Entry]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/audit [get]
func (h *ReportHandler) RecentAudit(c *gin.Context) {
	q := audit.Query{
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		q.Limit = limit
	}
	entries, err := h.audit.Recent(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}
