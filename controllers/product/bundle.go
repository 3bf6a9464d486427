package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/danielgao20/product-catalog/catalog"
	"github.com/danielgao20/product-catalog/events"
)

type BundleChildInput struct {
	ChildProductID uint `json:"childProductId" binding:"required"`
	QuantityRatio  int  `json:"quantityRatio" binding:"required"`
}

// GET /admin/products/:id/children
func GetBundleChildren(catalogSvc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		children, err := catalogSvc.BundleChildren(uint(id))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bundle children"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "children": children})
	}
}

// POST /admin/products/:id/children
func AddBundleChild(catalogSvc *catalog.Service, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var input BundleChildInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		member, err := catalogSvc.AddBundleChild(uint(id), input.ChildProductID, input.QuantityRatio)
		switch {
		case errors.Is(err, catalog.ErrInvalidRatio),
			errors.Is(err, catalog.ErrSelfReference),
			errors.Is(err, catalog.ErrNotABundle):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add bundle child"})
			return
		}

		pub.Publish(events.Event{Type: events.ProductsUpdated})
		c.JSON(http.StatusCreated, gin.H{"success": true, "member": member})
	}
}

// DELETE /admin/products/:id/children/:child_id
func RemoveBundleChild(catalogSvc *catalog.Service, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		childID, err := strconv.Atoi(c.Param("child_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid child product ID"})
			return
		}

		if err := catalogSvc.RemoveBundleChild(uint(id), uint(childID)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Bundle membership not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove bundle child"})
			}
			return
		}

		pub.Publish(events.Event{Type: events.ProductsUpdated})
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
