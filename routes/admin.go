package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/danielgao20/product-catalog/auth"
	"github.com/danielgao20/product-catalog/catalog"
	productcontroller "github.com/danielgao20/product-catalog/controllers/product"
	"github.com/danielgao20/product-catalog/events"
	"github.com/danielgao20/product-catalog/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Login is open; the
// rest require the admin-token cookie.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, catalogSvc *catalog.Service, pub events.Publisher) {
	r.POST("/admin/auth/login", auth.AdminLogin(db))
	r.POST("/admin/auth/logout", auth.AdminLogout())

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAdminToken)
	{
		adminGroup.GET("/auth/me", auth.AdminMe(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("", productcontroller.GetProducts(db, catalogSvc))
			productAdmin.POST("", productcontroller.CreateProduct(db, pub))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db, catalogSvc, pub))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db, pub))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db, catalogSvc))
			productAdmin.POST("/update-stock", productcontroller.UpdateStock(catalogSvc))

			// ─────────── Bundle Membership ───────────
			productAdmin.GET("/:id/children", productcontroller.GetBundleChildren(catalogSvc))
			productAdmin.POST("/:id/children", productcontroller.AddBundleChild(catalogSvc, pub))
			productAdmin.DELETE("/:id/children/:child_id", productcontroller.RemoveBundleChild(catalogSvc, pub))
		}

		adminGroup.POST("/upload", productcontroller.UploadProductImage())
	}
}
