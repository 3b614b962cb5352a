package orderControllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/umeshtogadiya/shoppingNow-backend/apperr"
	"github.com/umeshtogadiya/shoppingNow-backend/models"
)

// ExportOrdersToExcel streams orders from the last window_days (default 30)
// as an .xlsx download.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		windowDays, err := strconv.Atoi(c.DefaultQuery("window_days", "30"))
		if err != nil || windowDays < 1 {
			apperr.Respond(c, apperr.New(apperr.KindInvalidInput, "window_days must be a positive integer"))
			return
		}
		since := time.Now().AddDate(0, 0, -windowDays)

		var orders []models.Order
		if err := db.Preload("Items").
			Where("created_at >= ?", since).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			apperr.Respond(c, apperr.Internal(err, "failed to fetch orders"))
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			apperr.Respond(c, apperr.Internal(err, "failed to create Excel sheet"))
			return
		}

		headers := []string{
			"ID", "OrderNumber", "UserID", "Status", "PaymentStatus",
			"PaymentMethod", "Items", "TotalAmount", "Discount", "ShippingFee",
			"IsDelivered", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			itemCount := 0
			for _, item := range o.Items {
				itemCount += item.Quantity
			}

			row := sheet.AddRow()
			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.OrderNumber)
			row.AddCell().SetValue(o.UserID)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(string(o.PaymentStatus))
			row.AddCell().SetValue(string(o.PaymentMethod))
			row.AddCell().SetValue(itemCount)
			row.AddCell().SetValue(o.TotalAmount)
			row.AddCell().SetValue(o.Discount)
			row.AddCell().SetValue(o.ShippingFee)
			row.AddCell().SetValue(o.IsDelivered)
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			apperr.Respond(c, apperr.Internal(err, "failed to write Excel file"))
			return
		}
	}
}
