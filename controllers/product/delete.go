package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/danielgao20/product-catalog/events"
	"github.com/danielgao20/product-catalog/models"
)

// DeleteProduct removes a product together with every bundle membership
// that references it, as a bundle or as a child.
func DeleteProduct(db *gorm.DB, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}

		tx := db.Begin()
		if tx.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
			return
		}

		if err := tx.Where("bundle_id = ? OR child_product_id = ?", id, id).
			Delete(&models.BundleProduct{}).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bundle memberships"})
			return
		}

		if err := tx.Delete(&product).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit product deletion"})
			return
		}

		pub.Publish(events.Event{Type: events.ProductsUpdated})
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
