package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NikoSAN02/Blacwom-website/cache"
	cartControllers "github.com/NikoSAN02/Blacwom-website/controllers/cart"
	productcontroller "github.com/NikoSAN02/Blacwom-website/controllers/product"
	userControllers "github.com/NikoSAN02/Blacwom-website/controllers/user"
	"github.com/NikoSAN02/Blacwom-website/middleware"
)

// SetupUserRoutes registers the public catalog and all "/user/*"
// endpoints. The catalog takes an optional token so signed-in salon and
// wholesale viewers see their own prices; everything under /user
// requires a valid session and an approved account.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, rdb *cache.Redis) {
	// ──────────────── Public Catalog ────────────────
	r.GET("/products", middleware.OptionalToken, productcontroller.GetProducts(db, rdb))
	r.GET("/products/:id", middleware.OptionalToken, productcontroller.GetProductByID(db))

	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken, middleware.RequireApproved(db))
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))    // GET /user/
		userGroup.PUT("/", userControllers.UpdateUser(db)) // PUT /user/

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))                           // GET /user/cart
			cartGroup.POST("/", cartControllers.AddCartItem(db))                          // POST /user/cart
			cartGroup.PUT("/:product_id", cartControllers.UpdateCartItemQuantity(db))     // PUT /user/cart/:product_id
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(db))          // DELETE /user/cart/:product_id
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))                      // DELETE /user/cart
		}
	}
}
