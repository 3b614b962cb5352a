package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/umeshtogadiya/shoppingNow-backend/apperr"
)

type OrderStatus string
type PaymentStatus string
type PaymentMethod string

const (
	// Order statuses (typical e-commerce flow)
	OrderStatusProcessing     OrderStatus = "processing"       // Order placed, awaiting confirmation
	OrderStatusConfirmed      OrderStatus = "confirmed"        // Confirmed by seller
	OrderStatusShipped        OrderStatus = "shipped"          // Handed to carrier
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery" // On the last mile
	OrderStatusDelivered      OrderStatus = "delivered"        // Customer received the item
	OrderStatusCancelled      OrderStatus = "cancelled"        // Cancelled before shipping
	OrderStatusReturned       OrderStatus = "returned"         // Customer returned the item

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"  // Payment not completed yet
	PaymentStatusPaid     PaymentStatus = "paid"     // Payment completed successfully
	PaymentStatusFailed   PaymentStatus = "failed"   // Payment attempt failed
	PaymentStatusRefunded PaymentStatus = "refunded" // Money returned to customer

	// Payment methods
	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodUPI    PaymentMethod = "UPI"
	PaymentMethodWallet PaymentMethod = "WALLET"
)

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID      string      `gorm:"not null;index" json:"user_id"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`

	PaymentMethod PaymentMethod `gorm:"type:VARCHAR(20)" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'processing'" json:"status"`

	TransactionID  string     `json:"transaction_id"`
	PaymentGateway string     `json:"payment_gateway"`
	PaidAt         *time.Time `json:"paid_at"`

	TrackingNumber    string     `json:"tracking_number"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`

	TotalAmount float64 `json:"total_amount"`
	Discount    float64 `json:"discount"`
	ShippingFee float64 `json:"shipping_fee"`

	IsDelivered  bool       `gorm:"default:false" json:"is_delivered"`
	DeliveredAt  *time.Time `json:"delivered_at"`
	CancelReason string     `json:"cancel_reason"`
	Notes        string     `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem is the immutable snapshot of a product line at placement time.
// Later catalog price changes never touch it.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index" json:"order_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// ParseOrderStatus maps a request string to an OrderStatus.
func ParseOrderStatus(status string) (OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(OrderStatusProcessing):
		return OrderStatusProcessing, nil
	case string(OrderStatusConfirmed):
		return OrderStatusConfirmed, nil
	case string(OrderStatusShipped):
		return OrderStatusShipped, nil
	case string(OrderStatusOutForDelivery):
		return OrderStatusOutForDelivery, nil
	case string(OrderStatusDelivered):
		return OrderStatusDelivered, nil
	case string(OrderStatusCancelled):
		return OrderStatusCancelled, nil
	case string(OrderStatusReturned):
		return OrderStatusReturned, nil
	default:
		return "", apperr.Newf(apperr.KindInvalidStatus, "invalid order status: %s", status)
	}
}

// ParsePaymentStatus maps a request string to a PaymentStatus.
func ParsePaymentStatus(status string) (PaymentStatus, error) {
	switch strings.ToLower(status) {
	case string(PaymentStatusPending):
		return PaymentStatusPending, nil
	case string(PaymentStatusPaid):
		return PaymentStatusPaid, nil
	case string(PaymentStatusFailed):
		return PaymentStatusFailed, nil
	case string(PaymentStatusRefunded):
		return PaymentStatusRefunded, nil
	default:
		return "", apperr.Newf(apperr.KindInvalidStatus, "invalid payment status: %s", status)
	}
}

// ParsePaymentMethod maps a request string to a PaymentMethod.
func ParsePaymentMethod(method string) (PaymentMethod, error) {
	switch strings.ToUpper(method) {
	case string(PaymentMethodCOD):
		return PaymentMethodCOD, nil
	case string(PaymentMethodCard):
		return PaymentMethodCard, nil
	case string(PaymentMethodUPI):
		return PaymentMethodUPI, nil
	case string(PaymentMethodWallet):
		return PaymentMethodWallet, nil
	default:
		return "", apperr.Newf(apperr.KindInvalidInput, "invalid payment method: %s", method)
	}
}

// NewOrderNumber generates a unique order reference.
// Example: ORD-20250908130500-1A2B3C4D
func NewOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return "ORD-" + time.Now().Format("20060102150405") + "-" + suffix
}

// CanBeCancelled reports whether the order may still be cancelled. Only
// orders that have not left the warehouse qualify.
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusProcessing || o.Status == OrderStatusConfirmed
}

// Cancel moves the order to cancelled and records the reason.
func (o *Order) Cancel(reason string) error {
	if !o.CanBeCancelled() {
		return apperr.Newf(apperr.KindInvalidTransition,
			"order in status %q cannot be cancelled", o.Status)
	}
	o.Status = OrderStatusCancelled
	o.CancelReason = reason
	return nil
}

// SetStatus applies a status change plus its side effects. The delivered
// timestamp is written only on the first transition to delivered.
func (o *Order) SetStatus(status OrderStatus, now time.Time) {
	o.Status = status
	if status == OrderStatusDelivered && !o.IsDelivered {
		o.IsDelivered = true
		t := now
		o.DeliveredAt = &t
	}
}

// SetPaymentStatus applies a payment-status change. PaidAt is written only
// the first time the order becomes paid.
func (o *Order) SetPaymentStatus(status PaymentStatus, now time.Time) {
	o.PaymentStatus = status
	if status == PaymentStatusPaid && o.PaidAt == nil {
		t := now
		o.PaidAt = &t
	}
}
