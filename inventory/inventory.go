// Package inventory applies multi-item stock changes as conditional
// single-statement updates, so concurrent checkouts can never drive a
// product's stock below zero.
package inventory

import (
	"errors"

	"gorm.io/gorm"

	"github.com/umeshtogadiya/shoppingNow-backend/models"
)

// StockChange is one product/quantity pair in a bulk operation.
type StockChange struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// ItemResult reports the outcome of a single change within a bulk operation.
type ItemResult struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Applied   bool   `json:"applied"`
	Reason    string `json:"reason,omitempty"`
}

// BulkResult is the structured per-item outcome of a bulk stock operation.
// Partial application is visible here, never collapsed into one flag.
type BulkResult struct {
	Items   []ItemResult `json:"items"`
	Applied int          `json:"applied"`
	Failed  int          `json:"failed"`
}

func (r *BulkResult) AllApplied() bool {
	return r.Failed == 0
}

func (r *BulkResult) record(res ItemResult) {
	r.Items = append(r.Items, res)
	if res.Applied {
		r.Applied++
	} else {
		r.Failed++
	}
}

// ApplyDecrements decrements stock for every item. Each decrement is one
// conditional UPDATE: it only fires when the product exists, is not
// soft-deleted, and holds enough stock, and it folds the ACTIVE→OUT_OF_STOCK
// transition into the same statement. The read-modify-write therefore happens
// inside the database, not in Go.
func ApplyDecrements(db *gorm.DB, items []StockChange) (*BulkResult, error) {
	result := &BulkResult{}
	for _, item := range items {
		if item.Quantity <= 0 {
			result.record(ItemResult{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Reason:    "quantity must be positive",
			})
			continue
		}

		res := db.Model(&models.Product{}).
			Where("id = ? AND is_deleted = ? AND stock >= ?", item.ProductID, false, item.Quantity).
			Updates(map[string]interface{}{
				"stock": gorm.Expr("stock - ?", item.Quantity),
				"status": gorm.Expr(
					"CASE WHEN stock - ? = 0 AND status = ? THEN ? ELSE status END",
					item.Quantity, models.ProductStatusActive, models.ProductStatusOutOfStock,
				),
			})
		if res.Error != nil {
			return result, res.Error
		}

		if res.RowsAffected == 0 {
			result.record(ItemResult{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Reason:    decrementFailureReason(db, item),
			})
			continue
		}
		result.record(ItemResult{ProductID: item.ProductID, Quantity: item.Quantity, Applied: true})
	}
	return result, nil
}

// ApplyIncrements is the compensating bulk operation (cancellation restock).
// The OUT_OF_STOCK→ACTIVE transition rides along in the same statement;
// DRAFT and DISCONTINUED are left untouched.
func ApplyIncrements(db *gorm.DB, items []StockChange) (*BulkResult, error) {
	result := &BulkResult{}
	for _, item := range items {
		if item.Quantity <= 0 {
			result.record(ItemResult{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Reason:    "quantity must be positive",
			})
			continue
		}

		res := db.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			Updates(map[string]interface{}{
				"stock": gorm.Expr("stock + ?", item.Quantity),
				"status": gorm.Expr(
					"CASE WHEN status = ? THEN ? ELSE status END",
					models.ProductStatusOutOfStock, models.ProductStatusActive,
				),
			})
		if res.Error != nil {
			return result, res.Error
		}

		if res.RowsAffected == 0 {
			result.record(ItemResult{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Reason:    "product not found",
			})
			continue
		}
		result.record(ItemResult{ProductID: item.ProductID, Quantity: item.Quantity, Applied: true})
	}
	return result, nil
}

// decrementFailureReason distinguishes why a conditional decrement matched no
// row. Diagnostic only; the decrement itself has already been rejected.
func decrementFailureReason(db *gorm.DB, item StockChange) string {
	var product models.Product
	if err := db.Select("id", "stock", "is_deleted").
		First(&product, "id = ?", item.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "product not found"
		}
		return "product lookup failed"
	}
	if product.IsDeleted {
		return "product is deleted"
	}
	return "insufficient stock"
}
