package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/umeshtogadiya/shoppingNow-backend/apperr"
	"github.com/umeshtogadiya/shoppingNow-backend/models"
)

type UpdateUserInput struct {
	Name    *string         `json:"name"`
	Phone   *string         `json:"phone"`
	Address *models.Address `json:"address"`
}

// GET /user
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		var user models.User

		if err := db.Preload("Cart.Items").Preload("Orders").
			First(&user, "id = ?", userID).Error; err != nil {
			apperr.Respond(c, apperr.New(apperr.KindNotFound, "user not found"))
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// GET /admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.
			Select("id", "email", "name", "phone", "created_at"). // Select only public fields
			Order("created_at desc").
			Find(&users).Error; err != nil {
			apperr.Respond(c, apperr.Internal(err, "failed to fetch users"))
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

// PUT /user
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		var user models.User

		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			apperr.Respond(c, apperr.New(apperr.KindNotFound, "user not found"))
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Wrap(err, apperr.KindInvalidInput, "invalid user payload"))
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if input.Address != nil {
			updates["address_full_name"] = input.Address.FullName
			updates["address_street"] = input.Address.Street
			updates["address_city"] = input.Address.City
			updates["address_state"] = input.Address.State
			updates["address_postal_code"] = input.Address.PostalCode
			updates["address_country"] = input.Address.Country
			updates["address_phone"] = input.Address.Phone
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				apperr.Respond(c, apperr.Internal(err, "failed to update user"))
				return
			}
		}

		c.JSON(http.StatusOK, user)
	}
}
