package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/danielgao20/product-catalog/auth"
	"github.com/danielgao20/product-catalog/cart"
	"github.com/danielgao20/product-catalog/catalog"
	"github.com/danielgao20/product-catalog/checkout"
	cartControllers "github.com/danielgao20/product-catalog/controllers/cart"
	checkoutControllers "github.com/danielgao20/product-catalog/controllers/checkout"
	productcontroller "github.com/danielgao20/product-catalog/controllers/product"
	"github.com/danielgao20/product-catalog/events"
	"github.com/danielgao20/product-catalog/middleware"
)

// SetupPublicRoutes registers the storefront endpoints. Cart and checkout
// require a guest session id; everything else is open.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB, catalogSvc *catalog.Service,
	cartSvc *cart.Service, checkoutSvc *checkout.Service, hub *events.Hub) {

	// ──────────────── Guest Sessions ────────────────
	r.POST("/auth/session", auth.CreateGuestSession(db))

	// ──────────────── Browse Products ────────────────
	r.GET("/products", productcontroller.GetProducts(db, catalogSvc))
	r.GET("/products/:id", productcontroller.GetProductByID(db, catalogSvc))
	r.GET("/products/:id/savings", productcontroller.GetBundleSavings(catalogSvc))

	// ──────────────── Shopping Cart ────────────────
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.RequireSession)
	{
		cartGroup.GET("", cartControllers.GetCart(cartSvc))
		cartGroup.POST("", cartControllers.AddToCart(cartSvc))
		cartGroup.PUT("/:product_id", cartControllers.UpdateCartItem(cartSvc))
		cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(cartSvc))
		cartGroup.DELETE("", cartControllers.ClearCart(cartSvc))
	}

	// ──────────────── Checkout ────────────────
	r.POST("/checkout/promo", checkoutControllers.ValidatePromo())
	checkoutGroup := r.Group("/checkout")
	checkoutGroup.Use(middleware.RequireSession)
	{
		checkoutGroup.POST("", checkoutControllers.PlaceOrder(checkoutSvc))
	}

	// ──────────────── Live Updates ────────────────
	r.GET("/ws/updates", hub.Handler())
}
