// Package admin serves the user management endpoints of the admin area.
// Template management is mounted from the templates package.
package admin

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/foliocraft/foliocraft-backend/internal/auth"
	"github.com/foliocraft/foliocraft-backend/internal/users"
)

// UserStore is implemented by *users.Repo.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*users.User, error)
	List(ctx context.Context, limit, offset int) ([]users.User, error)
	SetRole(ctx context.Context, id, role string) (*users.User, error)
}

type Handler struct {
	users  UserStore
	logger *zap.Logger
}

func New(users UserStore, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{users: users, logger: logger}
}

// Register expects rg to be guarded by auth.RequireAdmin.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/users", h.listUsers)
	rg.GET("/users/:id", h.getUser)
	rg.PATCH("/users/:id/role", h.setRole)
}

func (h *Handler) listUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	items, err := h.users.List(c.Request.Context(), limit, offset)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "users": items})
}

func (h *Handler) getUser(c *gin.Context) {
	u, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

type roleReq struct {
	Role string `json:"role"`
}

// setRole refuses to let an admin demote themselves so the last admin
// cannot lock everyone out.
func (h *Handler) setRole(c *gin.Context) {
	var req roleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	id := c.Param("id")
	if id == auth.UserDBID(c) && req.Role != users.RoleAdmin {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "admins cannot remove their own admin role"})
		return
	}

	u, err := h.users.SetRole(c.Request.Context(), id, req.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	h.logger.Info("user role changed",
		zap.String("user_id", u.ID),
		zap.String("role", u.Role),
		zap.String("by", auth.UserDBID(c)))
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, users.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, users.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
