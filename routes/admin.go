package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NikoSAN02/Blacwom-website/cache"
	adminController "github.com/NikoSAN02/Blacwom-website/controllers/admin"
	cartControllers "github.com/NikoSAN02/Blacwom-website/controllers/cart"
	orderControllers "github.com/NikoSAN02/Blacwom-website/controllers/order"
	productcontroller "github.com/NikoSAN02/Blacwom-website/controllers/product"
	userControllers "github.com/NikoSAN02/Blacwom-website/controllers/user"
	"github.com/NikoSAN02/Blacwom-website/middleware"
	"github.com/NikoSAN02/Blacwom-website/notifier"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Access is gated
// on the role claim resolved against the admins table at login.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, rdb *cache.Redis, w *notifier.Worker) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		// ─────────── Admin & User Management ───────────
		adminGroup.GET("/admins", adminController.GetAllAdmins(db))
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db, rdb))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db, rdb))
			productAdmin.GET("", productcontroller.GetProducts(db, rdb))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db, rdb))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(db, rdb))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// ─────────── Account Approval Workflow ───────────
		approvals := adminGroup.Group("/approvals")
		{
			approvals.GET("/pending", adminController.ListPendingHandler(db))
			approvals.POST("/decide", adminController.DecideHandler(db, w))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db, w))
		}

		cartMgmt := adminGroup.Group("/user-cart")
		{
			cartMgmt.GET("/:user_id", cartControllers.GetAdminUserCart(db))
		}
	}
}
