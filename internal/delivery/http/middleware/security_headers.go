package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware adds baseline security headers to all responses.
func SecurityHeadersMiddleware(release bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Release deployments sit behind TLS
		if release {
			c.Header("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}

		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Authenticated responses and resume payloads are per-user data
		if c.GetHeader("Authorization") != "" {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, private")
			c.Header("Pragma", "no-cache")
		}

		c.Next()
	}
}
