package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/danielgao20/product-catalog/cart"
	"github.com/danielgao20/product-catalog/models"
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity"`
}

func sessionID(c *gin.Context) string {
	return c.GetString("session_id")
}

// GET /cart
func GetCart(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, err := svc.GetCart(sessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, current)
	}
}

// POST /cart
func AddToCart(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		current, err := svc.AddToCart(sessionID(c), input.ProductID, input.Quantity)
		switch {
		case errors.Is(err, models.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
			return
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
			return
		}

		c.JSON(http.StatusOK, current)
	}
}

// PUT /cart/:product_id
func UpdateCartItem(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		current, err := svc.UpdateQuantity(sessionID(c), uint(productID), input.Quantity)
		switch {
		case errors.Is(err, cart.ErrLineNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, current)
	}
}

// DELETE /cart/:product_id
func DeleteCartItem(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}

		current, err := svc.RemoveFromCart(sessionID(c), uint(productID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
			return
		}

		c.JSON(http.StatusOK, current)
	}
}

// DELETE /cart
func ClearCart(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, err := svc.ClearCart(sessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}

		c.JSON(http.StatusOK, current)
	}
}
