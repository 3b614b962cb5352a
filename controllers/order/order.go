package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/umeshtogadiya/shoppingNow-backend/apperr"
	"github.com/umeshtogadiya/shoppingNow-backend/inventory"
	"github.com/umeshtogadiya/shoppingNow-backend/models"
)

// -------- Request Structs --------

type ExplicitOrderItem struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required"`
	Price     float64 `json:"price"`
}

type PlaceOrderRequest struct {
	ShippingAddress models.Address      `json:"shipping_address" binding:"required"`
	PaymentMethod   string              `json:"payment_method" binding:"required"`
	TotalAmount     float64             `json:"total_amount"`
	Discount        float64             `json:"discount"`
	ShippingFee     float64             `json:"shipping_fee"`
	Notes           string              `json:"notes"`
	UseCart         bool                `json:"use_cart"`
	Items           []ExplicitOrderItem `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status            string `json:"status" binding:"required"`
	TrackingNumber    string `json:"tracking_number"`
	EstimatedDelivery string `json:"estimated_delivery"` // RFC3339
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus  string `json:"payment_status" binding:"required"`
	TransactionID  string `json:"transaction_id"`
	PaymentGateway string `json:"payment_gateway"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

const orderNumberAttempts = 3

// -------- Core Logic --------

// PlaceOrder converts the user's cart (or an explicit item list) into an
// immutable order. Snapshot, stock decrement, order insert and cart clear all
// commit or roll back together in one transaction.
func PlaceOrder(db *gorm.DB, userID string, req PlaceOrderRequest) (*models.Order, error) {
	if missing := req.ShippingAddress.Validate(); len(missing) > 0 {
		return nil, apperr.Newf(apperr.KindInvalidInput,
			"shipping address missing fields: %s", strings.Join(missing, ", "))
	}
	paymentMethod, err := models.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if req.TotalAmount < 0 || req.Discount < 0 || req.ShippingFee < 0 {
		return nil, apperr.New(apperr.KindInvalidInput, "amounts cannot be negative")
	}

	var order models.Order

	txErr := db.Transaction(func(tx *gorm.DB) error {
		var orderItems []models.OrderItem
		var changes []inventory.StockChange
		var cart *models.Cart

		if req.UseCart {
			var userCart models.Cart
			if err := tx.Preload("Items").Where("user_id = ?", userID).
				First(&userCart).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.New(apperr.KindEmptyCart, "cart is empty")
				}
				return err
			}
			if len(userCart.Items) == 0 {
				return apperr.New(apperr.KindEmptyCart, "cart is empty")
			}
			cart = &userCart

			for _, line := range userCart.Items {
				var product models.Product
				if err := tx.Where("is_deleted = ?", false).
					First(&product, line.ProductID).Error; err != nil {
					return apperr.Newf(apperr.KindNotFound,
						"product %d is no longer available", line.ProductID)
				}
				// Unit price is re-resolved from the catalog at order time,
				// not taken from the cart line.
				orderItems = append(orderItems, models.OrderItem{
					ProductID:   product.ID,
					ProductName: product.Name,
					Quantity:    line.Quantity,
					UnitPrice:   product.SellingPrice,
					TotalPrice:  product.SellingPrice * float64(line.Quantity),
				})
				changes = append(changes, inventory.StockChange{
					ProductID: product.ID,
					Quantity:  line.Quantity,
				})
			}
		} else {
			if len(req.Items) == 0 {
				return apperr.New(apperr.KindNoItems, "order has no items")
			}
			for _, item := range req.Items {
				if item.Quantity < 1 {
					return apperr.New(apperr.KindInvalidInput, "item quantity must be at least 1")
				}
				if item.Price < 0 {
					return apperr.New(apperr.KindInvalidInput, "item price cannot be negative")
				}
				var product models.Product
				if err := tx.Where("is_deleted = ?", false).
					First(&product, item.ProductID).Error; err != nil {
					return apperr.Newf(apperr.KindNotFound,
						"product %d is no longer available", item.ProductID)
				}
				orderItems = append(orderItems, models.OrderItem{
					ProductID:   product.ID,
					ProductName: product.Name,
					Quantity:    item.Quantity,
					UnitPrice:   item.Price,
					TotalPrice:  item.Price * float64(item.Quantity),
				})
				changes = append(changes, inventory.StockChange{
					ProductID: product.ID,
					Quantity:  item.Quantity,
				})
			}
		}

		result, err := inventory.ApplyDecrements(tx, changes)
		if err != nil {
			return err
		}
		if !result.AllApplied() {
			return &apperr.Error{
				Kind:    apperr.KindConflict,
				Message: "insufficient stock for one or more items",
				Details: result,
			}
		}

		orderNumber, err := freeOrderNumber(tx)
		if err != nil {
			return err
		}

		order = models.Order{
			OrderNumber:     orderNumber,
			UserID:          userID,
			Items:           orderItems,
			ShippingAddress: req.ShippingAddress,
			PaymentMethod:   paymentMethod,
			PaymentStatus:   models.PaymentStatusPending,
			Status:          models.OrderStatusProcessing,
			TotalAmount:     req.TotalAmount,
			Discount:        req.Discount,
			ShippingFee:     req.ShippingFee,
			Notes:           req.Notes,
			CreatedAt:       time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if cart != nil {
			if err := tx.Where("cart_id = ?", cart.CartID).
				Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Cart{}).Where("cart_id = ?", cart.CartID).
				Updates(map[string]interface{}{
					"total_items": 0,
					"total_price": 0.0,
				}).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	broadcastOrderEvent("order.placed", &order)
	return &order, nil
}

// freeOrderNumber generates an order number and re-checks it against the
// store, retrying a few times before giving up with a conflict. With the
// UUID suffix a collision is effectively unreachable.
func freeOrderNumber(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		candidate := models.NewOrderNumber()
		var count int64
		if err := tx.Model(&models.Order{}).
			Where("order_number = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", apperr.New(apperr.KindConflict, "could not allocate a unique order number")
}

// CancelOrder cancels a processing/confirmed order and restores its stock.
func CancelOrder(db *gorm.DB, orderID uint, userID, reason string) (*models.Order, error) {
	var order models.Order
	txErr := db.Transaction(func(tx *gorm.DB) error {
		query := tx.Preload("Items")
		if userID != "" {
			query = query.Where("user_id = ?", userID)
		}
		if err := query.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindNotFound, "order not found")
			}
			return err
		}

		if err := order.Cancel(reason); err != nil {
			return err
		}

		// Restock: a cancellable order has not shipped, so the units go
		// back on the shelf.
		changes := make([]inventory.StockChange, 0, len(order.Items))
		for _, item := range order.Items {
			changes = append(changes, inventory.StockChange{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
		if _, err := inventory.ApplyIncrements(tx, changes); err != nil {
			return err
		}

		return tx.Save(&order).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	broadcastOrderEvent("order.cancelled", &order)
	return &order, nil
}

// orderLookup resolves a path token as a numeric id or an order number.
func orderLookup(db *gorm.DB, token string) *gorm.DB {
	query := db.Preload("Items")
	if id, err := strconv.ParseUint(token, 10, 64); err == nil {
		return query.Where("id = ?", id)
	}
	return query.Where("order_number = ?", token)
}

// -------- Handlers --------

// POST /user/orders
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Wrap(err, apperr.KindInvalidInput, "invalid order payload"))
			return
		}

		order, err := PlaceOrder(db, userID, req)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
		})
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		statusFilter := c.Query("status")
		paymentFilter := c.Query("payment_status")
		search := c.Query("search")

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if limit < 1 || limit > 100 {
			limit = 20
		}

		query := db.Model(&models.Order{})
		if statusFilter != "" {
			status, err := models.ParseOrderStatus(statusFilter)
			if err != nil {
				apperr.Respond(c, err)
				return
			}
			query = query.Where("status = ?", status)
		}
		if paymentFilter != "" {
			paymentStatus, err := models.ParsePaymentStatus(paymentFilter)
			if err != nil {
				apperr.Respond(c, err)
				return
			}
			query = query.Where("payment_status = ?", paymentStatus)
		}
		if search != "" {
			likePattern := "%" + search + "%"
			query = query.Where("order_number ILIKE ? OR user_id ILIKE ?",
				likePattern, likePattern)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			apperr.Respond(c, apperr.Internal(err, "failed to count orders"))
			return
		}

		var orders []models.Order
		if err := query.Preload("Items").
			Order("created_at DESC").
			Offset((page - 1) * limit).Limit(limit).
			Find(&orders).Error; err != nil {
			apperr.Respond(c, apperr.Internal(err, "failed to fetch orders"))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": orders,
			"total":  total,
			"page":   page,
			"limit":  limit,
		})
	}
}

// GET /user/orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var orders []models.Order
		if err := db.Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			apperr.Respond(c, apperr.Internal(err, "failed to fetch orders"))
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /user/orders/:orderID — scoped to the owner.
func GetUserOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var order models.Order
		if err := orderLookup(db, c.Param("orderID")).
			Where("user_id = ?", userID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.New(apperr.KindNotFound, "order not found"))
				return
			}
			apperr.Respond(c, apperr.Internal(err, "failed to fetch order"))
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /admin/orders/:orderID — numeric id or order number.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			apperr.Respond(c, apperr.New(apperr.KindInvalidInput, "orderID is required"))
			return
		}

		var order models.Order
		if err := orderLookup(db, orderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.New(apperr.KindNotFound, "order not found"))
				return
			}
			apperr.Respond(c, apperr.Internal(err, "failed to fetch order"))
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Wrap(err, apperr.KindInvalidInput, "status is required"))
			return
		}
		newStatus, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		var estimatedDelivery *time.Time
		if req.EstimatedDelivery != "" {
			t, err := time.Parse(time.RFC3339, req.EstimatedDelivery)
			if err != nil {
				apperr.Respond(c, apperr.New(apperr.KindInvalidInput,
					"estimated_delivery must be RFC3339"))
				return
			}
			estimatedDelivery = &t
		}

		var order models.Order
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := orderLookup(tx, orderID).First(&order).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.New(apperr.KindNotFound, "order not found")
				}
				return err
			}

			order.SetStatus(newStatus, time.Now())
			if req.TrackingNumber != "" {
				order.TrackingNumber = req.TrackingNumber
			}
			if estimatedDelivery != nil {
				order.EstimatedDelivery = estimatedDelivery
			}
			return tx.Save(&order).Error
		})
		if txErr != nil {
			apperr.Respond(c, txErr)
			return
		}

		broadcastOrderEvent("order.status_changed", &order)
		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:orderID/payment-status
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Wrap(err, apperr.KindInvalidInput, "payment_status is required"))
			return
		}
		newStatus, err := models.ParsePaymentStatus(req.PaymentStatus)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		var order models.Order
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := orderLookup(tx, orderID).First(&order).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.New(apperr.KindNotFound, "order not found")
				}
				return err
			}

			order.SetPaymentStatus(newStatus, time.Now())
			if req.TransactionID != "" {
				order.TransactionID = req.TransactionID
			}
			if req.PaymentGateway != "" {
				order.PaymentGateway = req.PaymentGateway
			}
			return tx.Save(&order).Error
		})
		if txErr != nil {
			apperr.Respond(c, txErr)
			return
		}

		broadcastOrderEvent("order.payment_changed", &order)
		c.JSON(http.StatusOK, order)
	}
}

// POST /user/orders/:orderID/cancel
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		orderID, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			apperr.Respond(c, apperr.New(apperr.KindInvalidInput, "invalid order ID"))
			return
		}

		var req CancelOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Wrap(err, apperr.KindInvalidInput, "reason is required"))
			return
		}

		order, err := CancelOrder(db, uint(orderID), userID, req.Reason)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /track/:orderRef — public, minimal projection, no auth. Accepts a
// numeric order id or an order number.
func TrackOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := orderLookup(db, c.Param("orderRef")).
			First(&order).Error; err != nil {
			apperr.Respond(c, apperr.New(apperr.KindNotFound, "order not found"))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"order_number":       order.OrderNumber,
			"status":             order.Status,
			"payment_status":     order.PaymentStatus,
			"tracking_number":    order.TrackingNumber,
			"estimated_delivery": order.EstimatedDelivery,
			"is_delivered":       order.IsDelivered,
			"delivered_at":       order.DeliveredAt,
			"created_at":         order.CreatedAt,
		})
	}
}
