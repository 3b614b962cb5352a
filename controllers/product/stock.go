package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/umeshtogadiya/shoppingNow-backend/apperr"
	"github.com/umeshtogadiya/shoppingNow-backend/models"
)

type SetStockInput struct {
	Stock *int `json:"stock" binding:"required"`
}

type AdjustStockInput struct {
	Delta     int    `json:"delta"`
	Operation string `json:"operation" binding:"required"` // "add" or "subtract"
}

// SetStock replaces a product's quantity on hand. The row is locked so the
// stock-driven status transition runs against the value being written.
func SetStock(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apperr.Respond(c, apperr.New(apperr.KindInvalidInput, "invalid product ID"))
			return
		}

		var input SetStockInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Wrap(err, apperr.KindInvalidInput, "stock is required"))
			return
		}

		var product models.Product
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, id).Error; err != nil {
				return apperr.New(apperr.KindNotFound, "product not found")
			}
			if err := product.SetStock(*input.Stock); err != nil {
				return err
			}
			return tx.Save(&product).Error
		})
		if txErr != nil {
			apperr.Respond(c, txErr)
			return
		}

		c.JSON(http.StatusOK, product.ToResponse())
	}
}

// AdjustStock applies a relative stock change (add or subtract). Subtract
// clamps at zero.
func AdjustStock(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apperr.Respond(c, apperr.New(apperr.KindInvalidInput, "invalid product ID"))
			return
		}

		var input AdjustStockInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Wrap(err, apperr.KindInvalidInput, "operation is required"))
			return
		}

		var product models.Product
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, id).Error; err != nil {
				return apperr.New(apperr.KindNotFound, "product not found")
			}
			if err := product.AdjustStock(input.Delta, models.StockOp(input.Operation)); err != nil {
				return err
			}
			return tx.Save(&product).Error
		})
		if txErr != nil {
			apperr.Respond(c, txErr)
			return
		}

		c.JSON(http.StatusOK, product.ToResponse())
	}
}
