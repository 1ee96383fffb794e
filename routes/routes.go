package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/peterdinis/Wheel-Verse/auth"
	"github.com/peterdinis/Wheel-Verse/config"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the auth, public,
// user, and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, verifier auth.TokenVerifier) {
	SetupAuthRoutes(r, db, cfg, verifier)
	SetupPublicRoutes(r, db)
	SetupUserRoutes(r, db, cfg)
	SetupAdminRoutes(r, db, cfg)
}
