package productcontroller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/umeshtogadiya/shoppingNow-backend/apperr"
	"github.com/umeshtogadiya/shoppingNow-backend/models"
)

var productSortColumns = map[string]bool{
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"selling_price": true,
	"stock":         true,
}

// GetProducts lists the catalog with search, status, price and featured
// filters plus pagination. Soft-deleted rows are excluded unless the caller
// passes include_deleted=true.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		statusFilter := c.Query("status")
		minPriceStr := c.Query("min_price")
		maxPriceStr := c.Query("max_price")
		featuredStr := c.Query("featured")
		includeDeleted := c.Query("include_deleted") == "true"

		sortBy := c.DefaultQuery("sort_by", "created_at")
		if !productSortColumns[sortBy] {
			sortBy = "created_at"
		}
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if limit < 1 || limit > 100 {
			limit = 20
		}

		query := db.Model(&models.Product{})
		if !includeDeleted {
			query = query.Where("is_deleted = ?", false)
		}

		if search != "" {
			likePattern := "%" + search + "%"
			query = query.Where("name ILIKE ? OR description ILIKE ? OR sku ILIKE ?",
				likePattern, likePattern, likePattern)
		}
		if statusFilter != "" {
			status, err := models.ParseProductStatus(statusFilter)
			if err != nil {
				apperr.Respond(c, err)
				return
			}
			query = query.Where("status = ?", status)
		}
		if minPriceStr != "" {
			mp, err := strconv.ParseFloat(minPriceStr, 64)
			if err != nil {
				apperr.Respond(c, apperr.New(apperr.KindInvalidInput, "invalid min_price"))
				return
			}
			query = query.Where("selling_price >= ?", mp)
		}
		if maxPriceStr != "" {
			mp, err := strconv.ParseFloat(maxPriceStr, 64)
			if err != nil {
				apperr.Respond(c, apperr.New(apperr.KindInvalidInput, "invalid max_price"))
				return
			}
			query = query.Where("selling_price <= ?", mp)
		}
		if featuredStr != "" {
			query = query.Where("is_featured = ?", featuredStr == "true")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			apperr.Respond(c, apperr.Internal(err, "failed to count products"))
			return
		}

		var products []models.Product
		orderClause := fmt.Sprintf("%s %s", sortBy, sortOrder)
		if err := query.Order(orderClause).
			Offset((page - 1) * limit).Limit(limit).
			Find(&products).Error; err != nil {
			apperr.Respond(c, apperr.Internal(err, "failed to fetch products"))
			return
		}

		responses := make([]models.ProductResponse, 0, len(products))
		for i := range products {
			responses = append(responses, products[i].ToResponse())
		}

		c.JSON(http.StatusOK, gin.H{
			"products": responses,
			"total":    total,
			"page":     page,
			"limit":    limit,
		})
	}
}

// GetLowStockProducts lists live products at or under their low-stock
// threshold, for the restocking dashboard.
func GetLowStockProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.
			Where("is_deleted = ?", false).
			Where("stock <= low_stock_threshold").
			Order("stock asc").
			Find(&products).Error; err != nil {
			apperr.Respond(c, apperr.Internal(err, "failed to fetch low-stock products"))
			return
		}

		responses := make([]models.ProductResponse, 0, len(products))
		for i := range products {
			responses = append(responses, products[i].ToResponse())
		}
		c.JSON(http.StatusOK, responses)
	}
}
