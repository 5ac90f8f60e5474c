package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NikoSAN02/Blacwom-website/auth"
	"github.com/NikoSAN02/Blacwom-website/models"
	"github.com/NikoSAN02/Blacwom-website/notifier"
)

// SetupAuthRoutes registers all "/auth/*" endpoints. One signup route
// per account type; the pending/approved split happens inside.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, w *notifier.Worker) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup/customer", auth.SignupHandler(db, w, models.UserTypeCustomer))
		authGroup.POST("/signup/salon", auth.SignupHandler(db, w, models.UserTypeSalon))
		authGroup.POST("/signup/wholesale", auth.SignupHandler(db, w, models.UserTypeWholesale))
		authGroup.POST("/login", auth.LoginHandler(db))
	}
}
