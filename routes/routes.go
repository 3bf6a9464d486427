package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/danielgao20/product-catalog/cart"
	"github.com/danielgao20/product-catalog/catalog"
	"github.com/danielgao20/product-catalog/checkout"
	"github.com/danielgao20/product-catalog/events"
)

// SetupRoutes is the single entry-point that wires up the public
// storefront and the admin panel route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, hub *events.Hub) {
	catalogSvc := catalog.NewService(db, hub)
	cartSvc := cart.NewService(db, hub)
	checkoutSvc := checkout.NewService(db, catalogSvc, cartSvc)

	SetupPublicRoutes(r, db, catalogSvc, cartSvc, checkoutSvc, hub)
	SetupAdminRoutes(r, db, catalogSvc, hub)
}
