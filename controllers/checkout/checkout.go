package checkoutControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danielgao20/product-catalog/checkout"
)

type PromoInput struct {
	Code string `json:"code" binding:"required"`
}

type PlaceOrderInput struct {
	PromoCode string `json:"promo_code" binding:"required"`
}

// POST /checkout/promo
func ValidatePromo() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PromoInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Promo code is required"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"code":  checkout.NormalizePromoCode(input.Code),
			"valid": checkout.ValidPromoCode(input.Code),
		})
	}
}

// POST /checkout
func PlaceOrder(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PlaceOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Promo code is required"})
			return
		}

		order, err := svc.PlaceOrder(c.GetString("session_id"), input.PromoCode)
		switch {
		case errors.Is(err, checkout.ErrInvalidPromo):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid promo code"})
			return
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
	}
}
