package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foliocraft/foliocraft-backend/internal/auth"
	"github.com/foliocraft/foliocraft-backend/internal/cv/domain"
	"github.com/foliocraft/foliocraft-backend/internal/cv/service"
)

type Handler struct {
	svc *service.CVService
}

func New(svc *service.CVService) *Handler {
	return &Handler{svc: svc}
}

// Register attaches every CV route under rg.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.get)
	rg.GET("/html", h.html)
	rg.GET("/profile", h.getProfile)
	rg.PUT("/profile", h.putProfile)

	registerEntries(rg.Group("/educations"), h.svc.Educations)
	registerEntries(rg.Group("/experiences"), h.svc.Experiences)
	registerEntries(rg.Group("/skills"), h.svc.Skills)
	registerEntries(rg.Group("/languages"), h.svc.Languages)
	registerEntries(rg.Group("/achievements"), h.svc.Achievements)
	registerEntries(rg.Group("/projects"), h.svc.Projects)
}

func (h *Handler) get(c *gin.Context) {
	cv, err := h.svc.CV(c.Request.Context(), auth.UserDBID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "cv": cv})
}

func (h *Handler) html(c *gin.Context) {
	doc, err := h.svc.HTML(c.Request.Context(), auth.UserDBID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}

func (h *Handler) getProfile(c *gin.Context) {
	p, err := h.svc.Profile(c.Request.Context(), auth.UserDBID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": p})
}

func (h *Handler) putProfile(c *gin.Context) {
	var p domain.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	out, err := h.svc.SaveProfile(c.Request.Context(), auth.UserDBID(c), &p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": out})
}

func registerEntries[T any, P interface {
	*T
	domain.Entry
}](rg *gin.RouterGroup, svc *service.Entries[P]) {
	rg.GET("", func(c *gin.Context) {
		items, err := svc.List(c.Request.Context(), auth.UserDBID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
	})

	rg.POST("", func(c *gin.Context) {
		e := P(new(T))
		if err := c.ShouldBindJSON(e); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
		out, err := svc.Create(c.Request.Context(), auth.UserDBID(c), e)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"ok": true, "item": out})
	})

	rg.PUT("/:id", func(c *gin.Context) {
		e := P(new(T))
		if err := c.ShouldBindJSON(e); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
		out, err := svc.Update(c.Request.Context(), auth.UserDBID(c), c.Param("id"), e)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "item": out})
	})

	rg.DELETE("/:id", func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), auth.UserDBID(c), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}

func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": "invalid cv record", "errors": verr.Errors})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
