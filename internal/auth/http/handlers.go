package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foliocraft/foliocraft-backend/internal/auth"
	"github.com/foliocraft/foliocraft-backend/internal/users"
)

type UserGetter interface {
	GetByID(ctx context.Context, id string) (*users.User, error)
}

type Handler struct {
	users UserGetter
}

func New(users UserGetter) *Handler {
	return &Handler{users: users}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/me", h.GetMe)
}

// GetMe returns the current user's account
func (h *Handler) GetMe(c *gin.Context) {
	userID := auth.UserDBID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	u, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}
