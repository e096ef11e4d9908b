package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows credentialed requests from the configured origins only.
// In debug mode the usual localhost dev servers are allowed as well.
func CORSMiddleware(allowedOrigins []string, release bool) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins)+3)
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	if !release {
		allowed["http://localhost:3000"] = true
		allowed["http://127.0.0.1:3000"] = true
		allowed["http://localhost:5173"] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Same-origin requests carry no Origin header
		isAllowed := origin == "" || allowed[origin]

		if isAllowed && origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Header("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")
			c.Header("Access-Control-Max-Age", "86400")
		}

		c.Header("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			if isAllowed {
				c.AbortWithStatus(http.StatusNoContent)
			} else {
				c.AbortWithStatus(http.StatusForbidden)
			}
			return
		}

		c.Next()
	}
}
