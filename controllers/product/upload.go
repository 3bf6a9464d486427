package productcontroller

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	uploadDir     = "./uploads/products"
	maxUploadSize = 5 << 20 // 5MB
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadProductImage stores an admin-uploaded product image under a
// uuid filename and returns its public URL.
func UploadProductImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
			return
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedImageExts[ext] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only JPEG, PNG, and WebP are allowed."})
			return
		}
		if file.Size > maxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 5MB."})
			return
		}

		if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
			return
		}

		filename := fmt.Sprintf("product-%s%s", uuid.NewString(), ext)
		savePath := filepath.Join(uploadDir, filename)
		if err := c.SaveUploadedFile(file, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"fileName": filename,
			"url":      fmt.Sprintf("/uploads/products/%s", filename),
		})
	}
}
