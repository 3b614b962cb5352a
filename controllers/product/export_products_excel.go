package productcontroller

import (
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/umeshtogadiya/shoppingNow-backend/apperr"
	"github.com/umeshtogadiya/shoppingNow-backend/models"
)

// ExportProductsToExcel streams the full catalog (soft-deleted rows included,
// flagged in their own column) as an .xlsx download.
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("id asc").Find(&products).Error; err != nil {
			apperr.Respond(c, apperr.Internal(err, "failed to fetch products"))
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			apperr.Respond(c, apperr.Internal(err, "failed to create Excel sheet"))
			return
		}

		// Header row
		headers := []string{
			"ID", "Name", "SKU", "Slug", "PurchasePrice", "SellingPrice",
			"Stock", "LowStockThreshold", "Status", "StockStatus",
			"IsDeleted", "IsFeatured", "CreatedAt", "UpdatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.SKU)
			row.AddCell().SetValue(p.Slug)
			row.AddCell().SetValue(p.PurchasePrice)
			row.AddCell().SetValue(p.SellingPrice)
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(p.LowStockThreshold)
			row.AddCell().SetValue(string(p.Status))
			row.AddCell().SetValue(p.StockStatus())
			row.AddCell().SetValue(p.IsDeleted)
			row.AddCell().SetValue(p.IsFeatured)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			apperr.Respond(c, apperr.Internal(err, "failed to write Excel file"))
			return
		}
	}
}
