package models

import "time"

type Cart struct {
	CartID     uint       `gorm:"primaryKey" json:"cart_id"`
	UserID     string     `gorm:"uniqueIndex" json:"user_id"` // Enforces ONE cart per user
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CartID      uint      `gorm:"index" json:"cart_id"`
	ProductID   uint      `gorm:"index" json:"product_id"`
	ProductName string    `json:"product_name"`
	ProductSlug string    `json:"product_slug"`
	Quantity    int       `json:"quantity"`
	PriceAtAdd  float64   `json:"price_at_add"` // first-add price, never updated on merge
	AddedAt     time.Time `json:"added_at"`
}

// RecomputeTotals rederives the cart totals from its lines. Callers run this
// after every mutation; totals are never written independently.
func (c *Cart) RecomputeTotals(items []CartItem) {
	c.TotalItems = 0
	c.TotalPrice = 0
	for _, item := range items {
		c.TotalItems += item.Quantity
		c.TotalPrice += float64(item.Quantity) * item.PriceAtAdd
	}
}
