package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/danielgao20/product-catalog/catalog"
	"github.com/danielgao20/product-catalog/models"
)

// GetProducts returns the catalog, newest first. Bundle stock counts are
// resolved from the children on every call, never read from the stored
// column.
func GetProducts(db *gorm.DB, catalogSvc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("created_at desc").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		for i := range products {
			avail, err := catalogSvc.Availability(products[i])
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve stock"})
				return
			}
			products[i].StockCount = avail.Units()
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

// GetProductByID returns a single product with its effective stock.
// URL param: /products/:id
func GetProductByID(db *gorm.DB, catalogSvc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
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

		avail, err := catalogSvc.Availability(product)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve stock"})
			return
		}
		product.StockCount = avail.Units()

		c.JSON(http.StatusOK, product)
	}
}

// GetBundleSavings reports what buying the parts separately would cost.
// URL param: /products/:id/savings
func GetBundleSavings(catalogSvc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		savings, err := catalogSvc.BundleSavings(uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate savings"})
			}
			return
		}

		c.JSON(http.StatusOK, savings)
	}
}
