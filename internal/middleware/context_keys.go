package middleware

import (
	"github.com/SscSPs/branchledger/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey  = contextKey("userID")
	authCtxKey = contextKey("authContext")
)

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetAuthContext retrieves the caller's role and branch scope set by AuthMiddleware.
func GetAuthContext(c *gin.Context) (domain.AuthContext, bool) {
	auth, ok := c.Request.Context().Value(authCtxKey).(domain.AuthContext)
	return auth, ok
}
