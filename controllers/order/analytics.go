package orderControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/umeshtogadiya/shoppingNow-backend/apperr"
	"github.com/umeshtogadiya/shoppingNow-backend/models"
)

// AnalyticsSummary is the read-side roll-up of orders in a time window.
type AnalyticsSummary struct {
	WindowDays      int                          `json:"window_days"`
	TotalOrders     int64                        `json:"total_orders"`
	TotalRevenue    float64                      `json:"total_revenue"`
	AvgOrderValue   float64                      `json:"avg_order_value"`
	CancelledOrders int64                        `json:"cancelled_orders"`
	DeliveredOrders int64                        `json:"delivered_orders"`
	StatusBreakdown map[models.OrderStatus]int64 `json:"status_breakdown"`
}

// Summarize aggregates orders created within the last windowDays. Zero orders
// yields a zeroed summary, never an error.
func Summarize(db *gorm.DB, windowDays int) (*AnalyticsSummary, error) {
	since := time.Now().AddDate(0, 0, -windowDays)
	summary := &AnalyticsSummary{
		WindowDays:      windowDays,
		StatusBreakdown: make(map[models.OrderStatus]int64),
	}

	base := db.Model(&models.Order{}).Where("created_at >= ?", since)

	if err := base.Session(&gorm.Session{}).Count(&summary.TotalOrders).Error; err != nil {
		return nil, err
	}

	var revenue struct {
		Total float64
	}
	if err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	summary.TotalRevenue = revenue.Total

	if summary.TotalOrders > 0 {
		summary.AvgOrderValue = summary.TotalRevenue / float64(summary.TotalOrders)
	}

	type statusCount struct {
		Status models.OrderStatus
		Count  int64
	}
	var rows []statusCount
	if err := base.Session(&gorm.Session{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		summary.StatusBreakdown[row.Status] = row.Count
		switch row.Status {
		case models.OrderStatusCancelled:
			summary.CancelledOrders = row.Count
		case models.OrderStatusDelivered:
			summary.DeliveredOrders = row.Count
		}
	}

	return summary, nil
}

// GET /admin/orders/analytics?window_days=30
func AnalyticsSummaryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		windowDays, err := strconv.Atoi(c.DefaultQuery("window_days", "30"))
		if err != nil || windowDays < 1 {
			apperr.Respond(c, apperr.New(apperr.KindInvalidInput, "window_days must be a positive integer"))
			return
		}

		summary, err := Summarize(db, windowDays)
		if err != nil {
			apperr.Respond(c, apperr.Internal(err, "failed to aggregate orders"))
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
