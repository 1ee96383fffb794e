package routes

import (
	"github.com/gin-gonic/gin"
	productControllers "github.com/peterdinis/Wheel-Verse/controllers/product"
	"gorm.io/gorm"
)

// SetupPublicRoutes registers catalog browsing endpoints. No auth required.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))
	r.GET("/categories", productControllers.GetAllCategoriesWithProducts(db))
	r.GET("/categories/:id", productControllers.GetCategoryByID(db))
}
