package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foliocraft/foliocraft-backend/internal/auth"
	"github.com/foliocraft/foliocraft-backend/internal/render"
	"github.com/foliocraft/foliocraft-backend/internal/render/domain"
)

type Handler struct {
	engine *render.Engine
}

func New(engine *render.Engine) *Handler {
	return &Handler{engine: engine}
}

type validateReq struct {
	ComponentCode string `json:"component_code"`
}

type previewReq struct {
	ComponentCode  string            `json:"component_code"`
	Customizations map[string]string `json:"customizations"`
}

// RegisterAPI attaches the authenticated render routes. previewGuards run
// before ad-hoc preview creation (admin check, rate limit).
func (h *Handler) RegisterAPI(rg *gin.RouterGroup, previewGuards ...gin.HandlerFunc) {
	rg.POST("/render/validate", h.validate)
	rg.POST("/render/preview", append(previewGuards, h.preview)...)
	rg.DELETE("/previews", h.releaseAll)
	rg.DELETE("/previews/:id", h.release)
}

// RegisterServe attaches the unauthenticated blob route. Preview ids are
// unguessable, which is what makes an iframe src shareable.
func (h *Handler) RegisterServe(r gin.IRouter) {
	r.GET("/previews/:id", h.serve)
}

func (h *Handler) validate(c *gin.Context) {
	var req validateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "validation": h.engine.Validate(req.ComponentCode)})
}

func (h *Handler) preview(c *gin.Context) {
	var req previewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	res, err := h.engine.Render(c.Request.Context(), auth.UserDBID(c), domain.RenderContext{
		ComponentCode:  req.ComponentCode,
		Customizations: req.Customizations,
	})
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to publish preview"})
		return
	}
	if !res.Validation.IsValid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "errors": res.Validation.Errors})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "preview": res.Handle})
}

func (h *Handler) serve(c *gin.Context) {
	blob, err := h.engine.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	ServeDocument(c, http.StatusOK, blob.Content)
}

func (h *Handler) release(c *gin.Context) {
	if err := h.engine.Release(c.Request.Context(), auth.UserDBID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) releaseAll(c *gin.Context) {
	n, err := h.engine.ReleaseAll(c.Request.Context(), auth.UserDBID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "released": n})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidHandle):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid preview id"})
	case errors.Is(err, domain.ErrPreviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "preview not found"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "preview store unavailable"})
	}
}
