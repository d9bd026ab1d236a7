package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foliocraft/foliocraft-backend/internal/github"
)

type Handler struct {
	svc *github.StatsService
}

func New(svc *github.StatsService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/:username/stats", h.stats)
}

func (h *Handler) stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context(), c.Param("username"))
	switch {
	case err == nil:
		c.Header("Cache-Control", "public, max-age=300")
		c.JSON(http.StatusOK, gin.H{"ok": true, "stats": st})
	case errors.Is(err, github.ErrInvalidLogin):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, github.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, github.ErrRateLimited):
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "github is rate limiting us, try again later"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "github unavailable"})
	}
}
