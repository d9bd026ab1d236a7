package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/foliocraft/foliocraft-backend/internal/auth"
	renderdomain "github.com/foliocraft/foliocraft-backend/internal/render/domain"
	"github.com/foliocraft/foliocraft-backend/internal/templates/domain"
)

func (h *Handler) listActive(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), domain.ListFilter{
		ActiveOnly: true,
		Category:   strings.TrimSpace(c.Query("category")),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to list templates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "templates": items})
}

func (h *Handler) getActive(c *gin.Context) {
	t, err := h.svc.GetActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	t.ComponentCode = ""
	c.JSON(http.StatusOK, gin.H{"ok": true, "template": t})
}

func (h *Handler) listAll(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), domain.ListFilter{
		Category:    strings.TrimSpace(c.Query("category")),
		IncludeCode: c.Query("include_code") == "true",
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to list templates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "templates": items})
}

func (h *Handler) get(c *gin.Context) {
	t, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "template": t})
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	t, err := h.svc.Create(c.Request.Context(), &domain.CreateTemplateRequest{
		Name:          req.Name,
		Description:   req.Description,
		Category:      strings.TrimSpace(req.Category),
		ThumbnailURL:  req.ThumbnailURL,
		ComponentCode: req.ComponentCode,
		CreatedBy:     auth.UserDBID(c),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "template": t})
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	t, err := h.svc.Update(c.Request.Context(), c.Param("id"), &domain.UpdateTemplateRequest{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		ThumbnailURL:  req.ThumbnailURL,
		ComponentCode: req.ComponentCode,
		IsActive:      req.IsActive,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "template": t})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// preview publishes the stored template with sample customizations so the
// admin editor can show it in an iframe.
func (h *Handler) preview(c *gin.Context) {
	var req previewReq
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
	}

	t, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := h.engine.Render(c.Request.Context(), auth.UserDBID(c), renderdomain.RenderContext{
		ComponentCode:  t.ComponentCode,
		Customizations: req.Customizations,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to render template"})
		return
	}
	if !res.Validation.IsValid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "errors": res.Validation.Errors})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "preview": res.Handle})
}

func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": "invalid template", "errors": verr.Errors})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "template not found"})
	case errors.Is(err, domain.ErrInUse):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "template is used by portfolios"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
