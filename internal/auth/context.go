package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID = "user_id"
	CtxEmail  = "user_email"
)

// UserID extracts the authenticated user's UID from the Gin context.
// This is set by RequireUser.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}

// UserEmail extracts the authenticated user's email, if the token carried one.
func UserEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxEmail))
}
