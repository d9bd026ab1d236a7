package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderUser sets a firebase uid in context from X-User-Id without verifying
// anything. Falls back to "demo-user". Development and tests only.
func HeaderUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			uid = "demo-user"
		}

		c.Set(CtxFirebaseUID, uid)
		if email := strings.TrimSpace(c.GetHeader("X-User-Email")); email != "" {
			c.Set(CtxEmail, email)
		}

		c.Next()
	}
}
