package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foliocraft/foliocraft-backend/internal/users"
)

// UserEnsurer is satisfied by *users.Repo.
type UserEnsurer interface {
	EnsureUser(ctx context.Context, u users.UpsertUser) (*users.User, error)
}

// WithUser resolves the authenticated firebase uid to a users row and stores
// its id and role in the context. It must run after an identity middleware.
func WithUser(repo UserEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		fuid := UserFirebaseUID(c)
		if fuid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
			c.Abort()
			return
		}

		u, err := repo.EnsureUser(c.Request.Context(), users.UpsertUser{
			FirebaseUID: fuid,
			Email:       c.GetString(CtxEmail),
			DisplayName: c.GetHeader("X-User-Name"),
			PhotoURL:    c.GetHeader("X-User-Photo"),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxUserDBID, u.ID)
		c.Set(CtxUserRole, u.Role)
		c.Next()
	}
}

// RequireAdmin rejects callers whose role is not admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
