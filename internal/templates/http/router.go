package http

import "github.com/gin-gonic/gin"

// RegisterPublic attaches the catalogue routes any signed-in user can read.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("", h.listActive)
	rg.GET("/:id", h.getActive)
}

// RegisterAdmin attaches template management routes. Callers guard the group
// with auth.RequireAdmin.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("", h.listAll)
	rg.POST("", h.create)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
	rg.POST("/:id/preview", h.preview)
}
