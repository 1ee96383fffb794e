package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/peterdinis/Wheel-Verse/auth"
	"github.com/peterdinis/Wheel-Verse/config"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all /auth/* endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, verifier auth.TokenVerifier) {
	h := auth.NewHandler(db, cfg.JWTSecret, cfg.TokenTTL, verifier)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/oidc", h.OIDCLogin)
		authGroup.GET("/session", h.Session)
	}
}
