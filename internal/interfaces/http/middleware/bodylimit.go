package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/renztrending/backend/internal/interfaces/http/dto"
)

// BodyLimitByRoute rejects requests whose declared length exceeds the limit
// with 413 and caps streamed bodies at the same size. routes raises the limit
// for matched route patterns such as "/api/v1/admin/products/:id/images".
func BodyLimitByRoute(maxBytes int64, routes map[string]int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := maxBytes
		if override, ok := routes[c.FullPath()]; ok {
			limit = override
		}

		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodePayloadTooLarge,
				"Request body exceeds maximum allowed size",
				c.GetString(RequestIDContextKey),
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
