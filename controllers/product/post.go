package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/danielgao20/product-catalog/events"
	"github.com/danielgao20/product-catalog/models"
)

type ProductInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	IsBundle    bool            `json:"isBundle"`
	Details     string          `json:"details"`
	Features    []string        `json:"features"`
	InStock     *bool           `json:"inStock"`
	StockCount  int             `json:"stockCount"`
}

// CreateProduct creates a new product from the admin panel.
func CreateProduct(db *gorm.DB, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
			return
		}
		if input.StockCount < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock count cannot be negative"})
			return
		}

		inStock := true
		if input.InStock != nil {
			inStock = *input.InStock
		}

		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			ImageURL:    input.ImageURL,
			IsBundle:    input.IsBundle,
			Details:     input.Details,
			Features:    pq.StringArray(input.Features),
			InStock:     inStock,
			StockCount:  input.StockCount,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		pub.Publish(events.Event{Type: events.ProductsUpdated})
		c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
	}
}
