package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danielgao20/product-catalog/catalog"
)

type StockUpdateItem struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
	IsBundle  bool `json:"isBundle"`
}

type StockUpdateInput struct {
	Items []StockUpdateItem `json:"items" binding:"required"`
}

// UpdateStock applies a post-purchase batch decrement. Bundle items walk
// their memberships with the same ratio semantics as the stock resolver.
func UpdateStock(catalogSvc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input StockUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid items data"})
			return
		}

		lines := make([]catalog.PurchasedLine, 0, len(input.Items))
		for _, item := range input.Items {
			lines = append(lines, catalog.PurchasedLine{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				IsBundle:  item.IsBundle,
			})
		}

		if err := catalogSvc.DecrementStock(lines); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Stock updated successfully"})
	}
}
