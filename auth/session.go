package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/danielgao20/product-catalog/models"
)

const sessionTTL = 30 * 24 * time.Hour

// POST /auth/session
// Mints the opaque session id a guest cart hangs off. The client stores it
// and sends it back in X-Session-ID on every cart call.
func CreateGuestSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := "sess_" + generateRandomString(16)

		session := models.GuestSession{
			ID:        sessionID,
			ExpiresAt: time.Now().Add(sessionTTL),
		}
		if err := db.Create(&session).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"session_id": sessionID,
			"expires_at": session.ExpiresAt,
		})
	}
}

func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand_sess"
	}
	return hex.EncodeToString(bytes)
}
