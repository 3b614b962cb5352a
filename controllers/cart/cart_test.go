package cartControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/umeshtogadiya/shoppingNow-backend/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection, or the pool hands out fresh empty in-memory databases.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Cart{}, &models.CartItem{}))
	return db
}

func testRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	r.GET("/cart", GetUserCart(db))
	r.POST("/cart", AddCartItem(db))
	r.PUT("/cart/:product_id", UpdateCartItem(db))
	r.DELETE("/cart/:product_id", DeleteCartItem(db))
	r.DELETE("/cart", ClearUserCart(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) models.Cart {
	t.Helper()
	var cart models.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	return cart
}

func seedProduct(t *testing.T, db *gorm.DB, name, sku string, price float64) models.Product {
	t.Helper()
	p := models.Product{
		Name: name, SKU: sku, SellingPrice: price,
		Stock: 100, Status: models.ProductStatusActive,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestAddCartItemCreatesCartLazily(t *testing.T) {
	db := testDB(t)
	p := seedProduct(t, db, "Mouse", "MOU-0001-AAA", 10)
	r := testRouter(db, "user-1")

	w := doJSON(t, r, http.MethodPost, "/cart", gin.H{"product_id": p.ID, "quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)

	cart := decodeCart(t, w)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.TotalItems)
	assert.InDelta(t, 30.0, cart.TotalPrice, 0.0001)
	assert.Equal(t, 10.0, cart.Items[0].PriceAtAdd)
}

func TestAddCartItemMergeKeepsFirstAddPrice(t *testing.T) {
	db := testDB(t)
	p := seedProduct(t, db, "Mouse", "MOU-0001-AAA", 10)
	r := testRouter(db, "user-1")

	w := doJSON(t, r, http.MethodPost, "/cart", gin.H{"product_id": p.ID, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)

	// Catalog price changes, then the same product is added again.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", p.ID).Update("selling_price", 99).Error)

	w = doJSON(t, r, http.MethodPost, "/cart", gin.H{"product_id": p.ID, "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)

	cart := decodeCart(t, w)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 10.0, cart.Items[0].PriceAtAdd) // first-add price wins
	assert.Equal(t, 3, cart.TotalItems)
	assert.InDelta(t, 30.0, cart.TotalPrice, 0.0001)
}

func TestAddCartItemValidation(t *testing.T) {
	db := testDB(t)
	p := seedProduct(t, db, "Mouse", "MOU-0001-AAA", 10)
	r := testRouter(db, "user-1")

	w := doJSON(t, r, http.MethodPost, "/cart", gin.H{"product_id": p.ID, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	negative := -1.0
	w = doJSON(t, r, http.MethodPost, "/cart",
		gin.H{"product_id": p.ID, "quantity": 1, "price": negative})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/cart", gin.H{"product_id": 9999, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCartItemQuantity(t *testing.T) {
	db := testDB(t)
	p := seedProduct(t, db, "Mouse", "MOU-0001-AAA", 10)
	r := testRouter(db, "user-1")

	doJSON(t, r, http.MethodPost, "/cart", gin.H{"product_id": p.ID, "quantity": 2})

	w := doJSON(t, r, http.MethodPut, "/cart/"+itoa(p.ID), gin.H{"quantity": 5})
	require.Equal(t, http.StatusOK, w.Code)
	cart := decodeCart(t, w)
	assert.Equal(t, 5, cart.TotalItems)
	assert.InDelta(t, 50.0, cart.TotalPrice, 0.0001)

	// Quantity zero removes the line.
	w = doJSON(t, r, http.MethodPut, "/cart/"+itoa(p.ID), gin.H{"quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)
	cart = decodeCart(t, w)
	assert.Equal(t, 0, cart.TotalItems)
	assert.Equal(t, 0.0, cart.TotalPrice)

	// Negative quantity is invalid input.
	doJSON(t, r, http.MethodPost, "/cart", gin.H{"product_id": p.ID, "quantity": 1})
	w = doJSON(t, r, http.MethodPut, "/cart/"+itoa(p.ID), gin.H{"quantity": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing line is not found.
	w = doJSON(t, r, http.MethodPut, "/cart/9999", gin.H{"quantity": 2})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAndClearCart(t *testing.T) {
	db := testDB(t)
	mouse := seedProduct(t, db, "Mouse", "MOU-0001-AAA", 10)
	keyboard := seedProduct(t, db, "Keyboard", "KEY-0002-BBB", 20)
	r := testRouter(db, "user-1")

	doJSON(t, r, http.MethodPost, "/cart", gin.H{"product_id": mouse.ID, "quantity": 1})
	doJSON(t, r, http.MethodPost, "/cart", gin.H{"product_id": keyboard.ID, "quantity": 2})

	w := doJSON(t, r, http.MethodDelete, "/cart/"+itoa(mouse.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	cart := decodeCart(t, w)
	assert.Equal(t, 2, cart.TotalItems)
	assert.InDelta(t, 40.0, cart.TotalPrice, 0.0001)

	w = doJSON(t, r, http.MethodDelete, "/cart/"+itoa(mouse.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cart = decodeCart(t, w)
	assert.Equal(t, 0, cart.TotalItems)
	assert.Equal(t, 0.0, cart.TotalPrice)

	// The cart row survives a clear.
	var count int64
	require.NoError(t, db.Model(&models.Cart{}).
		Where("user_id = ?", "user-1").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetCartNotFound(t *testing.T) {
	db := testDB(t)
	r := testRouter(db, "fresh-user")

	w := doJSON(t, r, http.MethodGet, "/cart", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
