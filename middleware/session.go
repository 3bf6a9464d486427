package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireSession resolves the guest session id from the X-Session-ID
// header (session_id query as a fallback) and stashes it in the context.
func RequireSession(c *gin.Context) {
	sessionID := c.GetHeader("X-Session-ID")
	if sessionID == "" {
		sessionID = c.Query("session_id")
	}
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session id is required"})
		c.Abort()
		return
	}

	c.Set("session_id", sessionID)
	c.Next()
}
