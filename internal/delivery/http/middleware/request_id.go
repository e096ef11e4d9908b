package middleware

import (
	"jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is echoed back on every response
const RequestIDHeader = "X-Request-ID"

// RequestID reuses a well-formed incoming X-Request-ID or mints a new UUID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(string(domain.KeyRequestID), id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
