package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/foliocraft/foliocraft-backend/internal/users"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
	CtxUserDBID    = "user_db_id"
	CtxUserRole    = "user_role"
)

// UserFirebaseUID extracts the Firebase UID from the Gin context.
// This is set by FirebaseAuthMiddleware or HeaderUser.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// UserDBID is the users.id of the caller, set by WithUser.
func UserDBID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserDBID))
}

func UserRole(c *gin.Context) string {
	return c.GetString(CtxUserRole)
}

func IsAdmin(c *gin.Context) bool {
	return UserRole(c) == users.RoleAdmin
}
