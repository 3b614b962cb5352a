package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/umeshtogadiya/shoppingNow-backend/apperr"
	"github.com/umeshtogadiya/shoppingNow-backend/models"
)

// DeleteProduct soft-deletes a product: it is hidden from reads and
// discontinued, but the row (and every order referencing it) survives.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apperr.Respond(c, apperr.New(apperr.KindInvalidInput, "invalid product ID"))
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			apperr.Respond(c, apperr.New(apperr.KindNotFound, "product not found"))
			return
		}

		product.SoftDelete()
		if err := db.Save(&product).Error; err != nil {
			apperr.Respond(c, apperr.Internal(err, "failed to delete product"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

// RestoreProduct clears the soft-delete flag and recomputes status from the
// current stock level.
func RestoreProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apperr.Respond(c, apperr.New(apperr.KindInvalidInput, "invalid product ID"))
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			apperr.Respond(c, apperr.New(apperr.KindNotFound, "product not found"))
			return
		}

		product.Restore()
		if err := db.Save(&product).Error; err != nil {
			apperr.Respond(c, apperr.Internal(err, "failed to restore product"))
			return
		}

		c.JSON(http.StatusOK, product.ToResponse())
	}
}
