package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/peterdinis/Wheel-Verse/config"
	productControllers "github.com/peterdinis/Wheel-Verse/controllers/product"
	"github.com/peterdinis/Wheel-Verse/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers the API-key-protected catalog maintenance
// endpoints.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(cfg.AdminAPIKey))
	{
		adminGroup.POST("/products", productControllers.CreateProduct(db))
		adminGroup.PUT("/products/:id", productControllers.UpdateProduct(db))
		adminGroup.DELETE("/products/:id", productControllers.DeleteProduct(db))

		adminGroup.POST("/categories", productControllers.CreateCategory(db))
		adminGroup.PUT("/categories/:id", productControllers.UpdateCategory(db))
		adminGroup.DELETE("/categories/:id", productControllers.DeleteCategory(db))
	}
}
