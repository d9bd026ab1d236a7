package http

import "github.com/gin-gonic/gin"

// Register attaches owner routes. previewGuards run before preview creation.
func (h *Handler) Register(rg *gin.RouterGroup, previewGuards ...gin.HandlerFunc) {
	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
	rg.GET("/:id/customizations", h.getCustomizations)
	rg.PUT("/:id/customizations", h.putCustomizations)
	rg.POST("/:id/preview", append(previewGuards, h.preview)...)
}

// RegisterPublic attaches the published page route.
func (h *Handler) RegisterPublic(r gin.IRouter) {
	r.GET("/p/:slug", h.public)
}
