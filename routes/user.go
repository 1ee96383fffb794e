package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/peterdinis/Wheel-Verse/config"
	cartControllers "github.com/peterdinis/Wheel-Verse/controllers/cart"
	userControllers "github.com/peterdinis/Wheel-Verse/controllers/user"
	"github.com/peterdinis/Wheel-Verse/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all /user/* endpoints. Requires a session token.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(cfg.JWTSecret))
	{
		userGroup.GET("/", userControllers.GetUser(db))

		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetCart(db))
			cartGroup.POST("/add", cartControllers.AddToCart(db))
			cartGroup.POST("/increment", cartControllers.IncrementQuantity(db))
			cartGroup.POST("/decrement", cartControllers.DecrementQuantity(db))
			cartGroup.POST("/remove", cartControllers.RemoveFromCart(db))
			cartGroup.DELETE("/", cartControllers.ClearCart(db))
		}
	}
}
