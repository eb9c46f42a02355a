package middleware

import (
	"github.com/gin-gonic/gin"

	"news-portal-backend/internal/shared/response"
)

// AdminMiddleware checks that the authenticated caller holds the admin
// role. This is the real authorization boundary; there is no
// client-side soft gate to fall back on.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleInterface, exists := c.Get(CtxRole)
		if !exists {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		role, ok := roleInterface.(string)
		if !ok || role != "admin" {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
