package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/umeshtogadiya/shoppingNow-backend/apperr"
	"github.com/umeshtogadiya/shoppingNow-backend/models"
)

type AddCartItemInput struct {
	ProductID uint     `json:"product_id" binding:"required"`
	Quantity  int      `json:"quantity" binding:"required"`
	Price     *float64 `json:"price"` // optional; defaults to the current selling price
}

type UpdateCartItemInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func currentUserID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// loadOrCreateCart fetches the user's cart, creating it lazily on first use.
func loadOrCreateCart(tx *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := tx.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// refreshTotals rederives and persists the cart totals from its current
// lines. Every mutating handler calls this inside its transaction.
func refreshTotals(tx *gorm.DB, cart *models.Cart) error {
	var items []models.CartItem
	if err := tx.Where("cart_id = ?", cart.CartID).Find(&items).Error; err != nil {
		return err
	}
	cart.RecomputeTotals(items)
	cart.Items = items
	return tx.Model(&models.Cart{}).Where("cart_id = ?", cart.CartID).
		Updates(map[string]interface{}{
			"total_items": cart.TotalItems,
			"total_price": cart.TotalPrice,
		}).Error
}

// POST /user/cart
// AddCartItem appends a line or, when the product is already in the cart,
// increments its quantity. The first-add price wins on merge.
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input AddCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Wrap(err, apperr.KindInvalidInput, "invalid cart payload"))
			return
		}
		if input.Quantity < 1 {
			apperr.Respond(c, apperr.New(apperr.KindInvalidInput, "quantity must be at least 1"))
			return
		}
		if input.Price != nil && *input.Price < 0 {
			apperr.Respond(c, apperr.New(apperr.KindInvalidInput, "price cannot be negative"))
			return
		}

		var product models.Product
		if err := db.Where("is_deleted = ?", false).
			First(&product, input.ProductID).Error; err != nil {
			apperr.Respond(c, apperr.New(apperr.KindNotFound, "product does not exist"))
			return
		}

		price := product.SellingPrice
		if input.Price != nil {
			price = *input.Price
		}

		var cart *models.Cart
		txErr := db.Transaction(func(tx *gorm.DB) error {
			var err error
			cart, err = loadOrCreateCart(tx, userID)
			if err != nil {
				return err
			}

			var item models.CartItem
			err = tx.Where("cart_id = ? AND product_id = ?", cart.CartID, input.ProductID).
				First(&item).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				item = models.CartItem{
					CartID:      cart.CartID,
					ProductID:   product.ID,
					ProductName: product.Name,
					ProductSlug: product.Slug,
					Quantity:    input.Quantity,
					PriceAtAdd:  price,
					AddedAt:     time.Now(),
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				// Merge: bump quantity, keep the price recorded at first add.
				item.Quantity += input.Quantity
				if err := tx.Save(&item).Error; err != nil {
					return err
				}
			}

			return refreshTotals(tx, cart)
		})
		if txErr != nil {
			apperr.Respond(c, apperr.Internal(txErr, "failed to add item to cart"))
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// PUT /user/cart/:product_id
// UpdateCartItem sets a line's quantity. Zero removes the line.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		productID := c.Param("product_id")

		var input UpdateCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Wrap(err, apperr.KindInvalidInput, "quantity is required"))
			return
		}
		if *input.Quantity < 0 {
			apperr.Respond(c, apperr.New(apperr.KindInvalidInput, "quantity cannot be negative"))
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			apperr.Respond(c, apperr.New(apperr.KindNotFound, "user cart not found"))
			return
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			var item models.CartItem
			if err := tx.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).
				First(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.New(apperr.KindNotFound, "cart item not found")
				}
				return err
			}

			if *input.Quantity == 0 {
				if err := tx.Delete(&item).Error; err != nil {
					return err
				}
			} else {
				item.Quantity = *input.Quantity
				if err := tx.Save(&item).Error; err != nil {
					return err
				}
			}

			return refreshTotals(tx, &cart)
		})
		if txErr != nil {
			apperr.Respond(c, txErr)
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// DELETE /user/cart/:product_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		productID := c.Param("product_id")

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			apperr.Respond(c, apperr.New(apperr.KindNotFound, "user cart not found"))
			return
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			result := tx.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).
				Delete(&models.CartItem{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return apperr.New(apperr.KindNotFound, "cart item not found")
			}
			return refreshTotals(tx, &cart)
		})
		if txErr != nil {
			apperr.Respond(c, txErr)
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// DELETE /user/cart
// ClearUserCart empties all lines but keeps the cart row.
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			apperr.Respond(c, apperr.New(apperr.KindNotFound, "user cart not found"))
			return
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("cart_id = ?", cart.CartID).
				Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			return refreshTotals(tx, &cart)
		})
		if txErr != nil {
			apperr.Respond(c, apperr.Internal(txErr, "failed to clear cart"))
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).
			First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.New(apperr.KindNotFound, "user cart not found"))
				return
			}
			apperr.Respond(c, apperr.Internal(err, "failed to fetch cart"))
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// GET /admin/user-cart/:user_id
func GetAdminUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			apperr.Respond(c, apperr.New(apperr.KindInvalidInput, "user_id is required"))
			return
		}

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).
			First(&cart).Error; err != nil {
			apperr.Respond(c, apperr.New(apperr.KindNotFound, "user cart not found"))
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}
