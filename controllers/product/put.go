package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/umeshtogadiya/shoppingNow-backend/apperr"
	"github.com/umeshtogadiya/shoppingNow-backend/models"
)

type UpdateProductInput struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	PurchasePrice     *float64 `json:"purchase_price"`
	SellingPrice      *float64 `json:"selling_price"`
	LowStockThreshold *int     `json:"low_stock_threshold"`
	Status            *string  `json:"status"`
	IsFeatured        *bool    `json:"is_featured"`
}

// UpdateProduct updates an existing product by ID. All fields are optional;
// SKU and stock are deliberately absent — the SKU is immutable and stock
// moves only through the stock endpoints.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
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

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Wrap(err, apperr.KindInvalidInput, "invalid product payload"))
			return
		}

		if input.Name != nil && *input.Name != "" {
			product.Name = *input.Name
			product.Slug = models.Slugify(*input.Name)
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.PurchasePrice != nil {
			if *input.PurchasePrice < 0 {
				apperr.Respond(c, apperr.New(apperr.KindInvalidInput, "purchase_price cannot be negative"))
				return
			}
			product.PurchasePrice = *input.PurchasePrice
		}
		if input.SellingPrice != nil {
			if *input.SellingPrice < 0 {
				apperr.Respond(c, apperr.New(apperr.KindInvalidInput, "selling_price cannot be negative"))
				return
			}
			product.SellingPrice = *input.SellingPrice
		}
		if input.LowStockThreshold != nil {
			product.LowStockThreshold = *input.LowStockThreshold
		}
		if input.Status != nil {
			status, err := models.ParseProductStatus(*input.Status)
			if err != nil {
				apperr.Respond(c, err)
				return
			}
			product.Status = status
		}
		if input.IsFeatured != nil {
			product.IsFeatured = *input.IsFeatured
		}

		if err := db.Save(&product).Error; err != nil {
			apperr.Respond(c, apperr.Internal(err, "failed to update product"))
			return
		}

		c.JSON(http.StatusOK, product.ToResponse())
	}
}
