package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NikoSAN02/Blacwom-website/cache"
	"github.com/NikoSAN02/Blacwom-website/notifier"
)

// SetupRoutes is the single entry-point that wires up Auth, User,
// Admin and Order route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, rdb *cache.Redis, w *notifier.Worker) {
	// Public auth + catalog routes (no middleware / optional token)
	SetupAuthRoutes(r, db, w)

	// User routes (JWT-protected)
	SetupUserRoutes(r, db, rdb)

	// Admin routes (JWT + admin role claim)
	SetupAdminRoutes(r, db, rdb, w)

	// Order routes
	SetupOrderRoutes(r, db, w)
}
