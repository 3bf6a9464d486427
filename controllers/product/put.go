package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/danielgao20/product-catalog/catalog"
	"github.com/danielgao20/product-catalog/events"
	"github.com/danielgao20/product-catalog/models"
)

type ProductUpdateInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"imageUrl"`
	IsBundle    *bool            `json:"isBundle"`
	Details     *string          `json:"details"`
	Features    []string         `json:"features"`
	InStock     *bool            `json:"inStock"`
	StockCount  *int             `json:"stockCount"`
}

// UpdateProduct applies a partial update to an existing product and
// returns it with its effective stock.
func UpdateProduct(db *gorm.DB, catalogSvc *catalog.Service, pub events.Publisher) gin.HandlerFunc {
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

		var input ProductUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			if input.Price.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
				return
			}
			product.Price = *input.Price
		}
		if input.ImageURL != nil {
			product.ImageURL = *input.ImageURL
		}
		if input.IsBundle != nil {
			product.IsBundle = *input.IsBundle
		}
		if input.Details != nil {
			product.Details = *input.Details
		}
		if input.Features != nil {
			product.Features = pq.StringArray(input.Features)
		}
		if input.InStock != nil {
			product.InStock = *input.InStock
		}
		if input.StockCount != nil {
			if *input.StockCount < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Stock count cannot be negative"})
				return
			}
			product.StockCount = *input.StockCount
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		avail, err := catalogSvc.Availability(product)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve stock"})
			return
		}
		product.StockCount = avail.Units()

		pub.Publish(events.Event{Type: events.ProductsUpdated})
		c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
	}
}
