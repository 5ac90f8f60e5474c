package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/NikoSAN02/Blacwom-website/controllers/order"
	"github.com/NikoSAN02/Blacwom-website/middleware"
	"github.com/NikoSAN02/Blacwom-website/notifier"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, w *notifier.Worker) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Checkout requires an approved account
		orders.POST("/place", middleware.RequireApproved(db), orderControllers.PlaceOrderHandler(db, w))

		// Order history for a specific user (owner or admin)
		orders.GET("/user/:userID", orderControllers.GetUserOrdersHandler(db))

		// Single order by ID or order number
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))

		// Self-service cancellation while pending/processing
		orders.POST("/:orderID/cancel", orderControllers.CancelOrderHandler(db))
	}

	// websocket endpoint for the admin live order feed
	r.GET("/orders/ws", orderControllers.OrderWebSocketHandler)
}
