package models

import (
	"strings"
	"time"

	"github.com/umeshtogadiya/shoppingNow-backend/apperr"
)

type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "ACTIVE"
	ProductStatusDraft        ProductStatus = "DRAFT"
	ProductStatusOutOfStock   ProductStatus = "OUT_OF_STOCK"
	ProductStatusDiscontinued ProductStatus = "DISCONTINUED"
)

// Stock operations accepted by AdjustStock.
type StockOp string

const (
	StockOpAdd      StockOp = "add"
	StockOpSubtract StockOp = "subtract"
)

type Product struct {
	ID                uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string        `gorm:"not null" json:"name"`
	Slug              string        `gorm:"index" json:"slug"`
	Description       string        `json:"description"`
	SKU               string        `gorm:"uniqueIndex;not null" json:"sku"`
	PurchasePrice     float64       `json:"purchase_price"`
	SellingPrice      float64       `gorm:"not null" json:"selling_price"`
	Stock             int           `gorm:"not null;default:0" json:"stock"`
	LowStockThreshold int           `gorm:"default:5" json:"low_stock_threshold"`
	Status            ProductStatus `gorm:"type:VARCHAR(20);default:'ACTIVE'" json:"status"`
	IsDeleted         bool          `gorm:"default:false;index" json:"is_deleted"`
	IsFeatured        bool          `gorm:"default:false" json:"is_featured"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// ParseProductStatus maps a request string to a ProductStatus.
func ParseProductStatus(s string) (ProductStatus, error) {
	switch strings.ToUpper(s) {
	case string(ProductStatusActive):
		return ProductStatusActive, nil
	case string(ProductStatusDraft):
		return ProductStatusDraft, nil
	case string(ProductStatusOutOfStock):
		return ProductStatusOutOfStock, nil
	case string(ProductStatusDiscontinued):
		return ProductStatusDiscontinued, nil
	default:
		return "", apperr.Newf(apperr.KindInvalidStatus, "invalid product status: %s", s)
	}
}

// NextStatus is the stock-driven status transition, applied on every stock
// write. Only ACTIVE and OUT_OF_STOCK participate; DRAFT and DISCONTINUED
// never auto-transition.
func NextStatus(current ProductStatus, stock int) ProductStatus {
	if stock == 0 && current == ProductStatusActive {
		return ProductStatusOutOfStock
	}
	if stock > 0 && current == ProductStatusOutOfStock {
		return ProductStatusActive
	}
	return current
}

// SetStock replaces the quantity on hand and applies the status transition.
func (p *Product) SetStock(qty int) error {
	if qty < 0 {
		return apperr.New(apperr.KindInvalidInput, "stock cannot be negative")
	}
	p.Stock = qty
	p.Status = NextStatus(p.Status, p.Stock)
	return nil
}

// AdjustStock applies a relative stock change. Subtract clamps at zero; add
// is unbounded. The status transition runs on the resulting quantity.
func (p *Product) AdjustStock(delta int, op StockOp) error {
	if delta < 0 {
		return apperr.New(apperr.KindInvalidInput, "stock adjustment must be non-negative")
	}
	switch op {
	case StockOpAdd:
		p.Stock += delta
	case StockOpSubtract:
		p.Stock -= delta
		if p.Stock < 0 {
			p.Stock = 0
		}
	default:
		return apperr.Newf(apperr.KindInvalidInput, "invalid stock operation: %s", op)
	}
	p.Status = NextStatus(p.Status, p.Stock)
	return nil
}

// SoftDelete hides the product and discontinues it until Restore.
func (p *Product) SoftDelete() {
	p.IsDeleted = true
	p.Status = ProductStatusDiscontinued
}

// Restore clears the soft-delete flag and recomputes status from stock.
func (p *Product) Restore() {
	p.IsDeleted = false
	if p.Stock > 0 {
		p.Status = ProductStatusActive
	} else {
		p.Status = ProductStatusOutOfStock
	}
}

func (p *Product) IsInStock() bool {
	return p.Stock > 0
}

func (p *Product) IsLowStock() bool {
	return p.Stock > 0 && p.Stock <= p.LowStockThreshold
}

// StockStatus is the read-side availability label.
func (p *Product) StockStatus() string {
	switch {
	case p.Stock == 0:
		return "out-of-stock"
	case p.Stock <= p.LowStockThreshold:
		return "low-stock"
	default:
		return "in-stock"
	}
}

// ProfitMargin is the percentage margin of selling over purchase price.
func (p *Product) ProfitMargin() float64 {
	if p.SellingPrice <= 0 {
		return 0
	}
	return (p.SellingPrice - p.PurchasePrice) / p.SellingPrice * 100
}

// Slugify derives a URL slug from a product name.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := true
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// ProductResponse is Product plus its derived read-only fields.
type ProductResponse struct {
	Product
	IsInStock    bool    `json:"is_in_stock"`
	IsLowStock   bool    `json:"is_low_stock"`
	StockStatus  string  `json:"stock_status"`
	ProfitMargin float64 `json:"profit_margin"`
}

func (p *Product) ToResponse() ProductResponse {
	return ProductResponse{
		Product:      *p,
		IsInStock:    p.IsInStock(),
		IsLowStock:   p.IsLowStock(),
		StockStatus:  p.StockStatus(),
		ProfitMargin: p.ProfitMargin(),
	}
}
