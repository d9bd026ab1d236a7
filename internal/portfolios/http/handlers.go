package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foliocraft/foliocraft-backend/internal/auth"
	"github.com/foliocraft/foliocraft-backend/internal/portfolios/domain"
	renderhttp "github.com/foliocraft/foliocraft-backend/internal/render/http"
)

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), auth.UserDBID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "portfolios": items})
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || req.TemplateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.svc.Create(c.Request.Context(), &domain.CreatePortfolioRequest{
		UserID:     auth.UserDBID(c),
		TemplateID: req.TemplateID,
		Slug:       req.Slug,
		Title:      req.Title,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "portfolio": p})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), auth.UserDBID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "portfolio": p})
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), auth.UserDBID(c), c.Param("id"), &domain.UpdatePortfolioRequest{
		TemplateID:  req.TemplateID,
		Slug:        req.Slug,
		Title:       req.Title,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "portfolio": p})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), auth.UserDBID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) getCustomizations(c *gin.Context) {
	fields, err := h.svc.Customizations(c.Request.Context(), auth.UserDBID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "customizations": fields})
}

func (h *Handler) putCustomizations(c *gin.Context) {
	var req customizationsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	fields, err := h.svc.ReplaceCustomizations(c.Request.Context(), auth.UserDBID(c), c.Param("id"), req.Customizations)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "customizations": fields})
}

// preview accepts optional unsaved fields to layer over the stored ones.
func (h *Handler) preview(c *gin.Context) {
	var req customizationsReq
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
	}

	res, err := h.svc.Preview(c.Request.Context(), auth.UserDBID(c), c.Param("id"), req.Customizations)
	if err != nil {
		writeError(c, err)
		return
	}
	if !res.Validation.IsValid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "errors": res.Validation.Errors})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "preview": res.Handle})
}

func (h *Handler) public(c *gin.Context) {
	doc, err := h.svc.PublicDocument(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, domain.ErrNotFound) {
		c.Data(http.StatusNotFound, "text/plain; charset=utf-8", []byte("portfolio not found"))
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("failed to render portfolio"))
		return
	}
	renderhttp.ServeDocument(c, http.StatusOK, []byte(doc))
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "portfolio not found"})
	case errors.Is(err, domain.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "slug already taken"})
	case errors.Is(err, domain.ErrInvalidSlug):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "slug must be 3-64 lowercase letters, digits or single dashes"})
	case errors.Is(err, domain.ErrInvalidCustomizations):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrTemplateUnavailable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": "template not available"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
