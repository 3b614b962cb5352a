package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/umeshtogadiya/shoppingNow-backend/apperr"
	"github.com/umeshtogadiya/shoppingNow-backend/models"
	"github.com/umeshtogadiya/shoppingNow-backend/utils"
)

type CreateProductInput struct {
	Name              string  `json:"name" binding:"required"`
	Description       string  `json:"description"`
	SKU               string  `json:"sku"`
	PurchasePrice     float64 `json:"purchase_price"`
	SellingPrice      float64 `json:"selling_price" binding:"required"`
	Stock             int     `json:"stock"`
	LowStockThreshold int     `json:"low_stock_threshold"`
	Status            string  `json:"status"`
	IsFeatured        bool    `json:"is_featured"`
}

// CreateProduct creates a new catalog product. When no SKU is supplied one is
// generated and checked against the store; the SKU is assigned exactly once.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Wrap(err, apperr.KindInvalidInput, "invalid product payload"))
			return
		}
		if input.SellingPrice < 0 || input.PurchasePrice < 0 {
			apperr.Respond(c, apperr.New(apperr.KindInvalidInput, "prices cannot be negative"))
			return
		}
		if input.Stock < 0 {
			apperr.Respond(c, apperr.New(apperr.KindInvalidInput, "stock cannot be negative"))
			return
		}

		status := models.ProductStatusActive
		if input.Status != "" {
			parsed, err := models.ParseProductStatus(input.Status)
			if err != nil {
				apperr.Respond(c, err)
				return
			}
			status = parsed
		}

		sku := strings.TrimSpace(input.SKU)
		if sku == "" {
			generated, err := utils.GenerateUniqueSKU(func(candidate string) (bool, error) {
				var count int64
				err := db.Model(&models.Product{}).Where("sku = ?", candidate).Count(&count).Error
				return count > 0, err
			})
			if err != nil {
				apperr.Respond(c, err)
				return
			}
			sku = generated
		}

		threshold := input.LowStockThreshold
		if threshold <= 0 {
			threshold = 5
		}

		product := models.Product{
			Name:              input.Name,
			Slug:              models.Slugify(input.Name),
			Description:       input.Description,
			SKU:               sku,
			PurchasePrice:     input.PurchasePrice,
			SellingPrice:      input.SellingPrice,
			LowStockThreshold: threshold,
			Status:            status,
			IsFeatured:        input.IsFeatured,
		}
		// Runs the stock-driven status transition before the first save.
		if err := product.SetStock(input.Stock); err != nil {
			apperr.Respond(c, err)
			return
		}

		if err := db.Create(&product).Error; err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "unique") ||
				strings.Contains(strings.ToLower(err.Error()), "duplicate") {
				apperr.Respond(c, apperr.Wrap(err, apperr.KindConflict, "sku already exists"))
				return
			}
			apperr.Respond(c, apperr.Internal(err, "failed to create product"))
			return
		}

		c.JSON(http.StatusCreated, product.ToResponse())
	}
}
