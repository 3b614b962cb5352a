package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/umeshtogadiya/shoppingNow-backend/controllers/cart"
	orderControllers "github.com/umeshtogadiya/shoppingNow-backend/controllers/order"
	productControllers "github.com/umeshtogadiya/shoppingNow-backend/controllers/product"
	userControllers "github.com/umeshtogadiya/shoppingNow-backend/controllers/user"
	"github.com/umeshtogadiya/shoppingNow-backend/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))    // GET /user/
		userGroup.PUT("/", userControllers.UpdateUser(db)) // PUT /user/

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))                  // GET /user/cart
			cartGroup.POST("/", cartControllers.AddCartItem(db))                 // POST /user/cart
			cartGroup.PUT("/:product_id", cartControllers.UpdateCartItem(db))    // PUT /user/cart/:product_id
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(db)) // DELETE /user/cart/:product_id
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))             // DELETE /user/cart
		}

		// ──────────────── Orders ────────────────
		orderGroup := userGroup.Group("/orders")
		{
			orderGroup.POST("/", orderControllers.PlaceOrderHandler(db))                  // POST /user/orders
			orderGroup.GET("/", orderControllers.GetUserOrdersHandler(db))                // GET /user/orders
			orderGroup.GET("/:orderID", orderControllers.GetUserOrderByIDHandler(db))     // GET /user/orders/:orderID
			orderGroup.POST("/:orderID/cancel", orderControllers.CancelOrderHandler(db)) // POST /user/orders/:orderID/cancel
		}

		// ──────────────── Browse Products ────────────────
		userGroup.GET("/products", productControllers.GetProducts(db))        // GET /user/products
		userGroup.GET("/products/:id", productControllers.GetProductByID(db)) // GET /user/products/:id
	}
}
