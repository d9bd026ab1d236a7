package http

import (
	"github.com/gin-gonic/gin"

	"github.com/foliocraft/foliocraft-backend/internal/render/domain"
)

// DocumentCSP confines a generated document: scripts only inline or from the
// CDN, no network access, and an opaque origin so it cannot reach the API
// with the viewer's credentials.
const DocumentCSP = "default-src 'none'; " +
	"script-src 'unsafe-inline' 'unsafe-eval' https://unpkg.com; " +
	"style-src 'unsafe-inline' https:; " +
	"img-src * data: blob:; " +
	"font-src https: data:; " +
	"connect-src 'none'; " +
	"frame-ancestors *; " +
	"sandbox allow-scripts"

// ServeDocument writes a generated HTML document with the sandbox headers.
func ServeDocument(c *gin.Context, status int, doc []byte) {
	h := c.Writer.Header()
	h.Set("Content-Security-Policy", DocumentCSP)
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Referrer-Policy", "no-referrer")
	h.Set("Cache-Control", "no-store")
	c.Data(status, domain.HTMLContentType, doc)
}
