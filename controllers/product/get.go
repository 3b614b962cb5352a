package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/umeshtogadiya/shoppingNow-backend/apperr"
	"github.com/umeshtogadiya/shoppingNow-backend/models"
)

// GetProductByID returns a single live product with its derived fields.
// URL param: /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			apperr.Respond(c, apperr.New(apperr.KindInvalidInput, "invalid product ID"))
			return
		}

		var product models.Product
		if err := db.Where("is_deleted = ?", false).First(&product, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				apperr.Respond(c, apperr.New(apperr.KindNotFound, "product not found"))
			} else {
				apperr.Respond(c, apperr.Internal(err, "failed to retrieve product"))
			}
			return
		}
		c.JSON(http.StatusOK, product.ToResponse())
	}
}
