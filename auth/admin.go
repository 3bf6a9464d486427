package auth

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/danielgao20/product-catalog/models"
)

const (
	AdminCookieName = "admin-token"
	adminTokenTTL   = 24 * time.Hour
)

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /admin/auth/login
func AdminLogin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		var admin models.AdminUser
		err := db.Where("email = ? AND is_active = ?", input.Email, true).First(&admin).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Println("❌ Admin lookup failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := IssueAdminToken(admin)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(AdminCookieName, token, int(adminTokenTTL.Seconds()), "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"success": true, "user": admin})
	}
}

// POST /admin/auth/logout
func AdminLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(AdminCookieName, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GET /admin/auth/me
func AdminMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, exists := c.Get("admin_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var admin models.AdminUser
		if err := db.First(&admin, adminID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": admin})
	}
}

func IssueAdminToken(admin models.AdminUser) (string, error) {
	claims := jwt.MapClaims{
		"id":    admin.ID,
		"email": admin.Email,
		"role":  admin.Role,
		"exp":   time.Now().Add(adminTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
