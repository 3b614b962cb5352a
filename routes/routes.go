package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/umeshtogadiya/shoppingNow-backend/controllers/order"
)

// SetupRoutes is the single entry-point that wires up User, Admin, and public
// route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// 1. User routes (JWT-protected)
	SetupUserRoutes(r, db)

	// 2. Admin routes (API-Key-protected)
	SetupAdminRoutes(r, db)

	// 3. Public order tracking (no auth)
	r.GET("/track/:orderRef", orderControllers.TrackOrderHandler(db))
}
