package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peterdinis/Wheel-Verse/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type addInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

type lineInput struct {
	ProductID string `json:"product_id" binding:"required"`
}

// POST /user/cart/add
//
// Add is additive: repeat calls for the same product grow the quantity,
// they do not overwrite it. The insert-or-increment runs as a single upsert
// on the (user_id, product_id) unique index, so two simultaneous adds from
// the same user (double-click, second tab) can never produce two lines or
// lose an increment.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input addInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		quantity := 1
		if input.Quantity != nil {
			quantity = *input.Quantity
		}
		if quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Validation failed",
				"fields": gin.H{"quantity": "Quantity must be at least 1"},
			})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		line := models.CartLine{
			UserID:    userID,
			ProductID: product.ID,
			Quantity:  quantity,
		}
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_lines.quantity + ?", quantity),
			}),
		}).Create(&line).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		// Re-read: on the conflict path the struct above still holds the
		// requested quantity, not the incremented row.
		var result models.CartLine
		if err := db.Where("user_id = ? AND product_id = ?", userID, product.ID).
			First(&result).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart line"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// POST /user/cart/increment
func IncrementQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input lineInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		res := db.Model(&models.CartLine{}).
			Where("user_id = ? AND product_id = ?", userID, input.ProductID).
			UpdateColumn("quantity", gorm.Expr("quantity + 1"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart line"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		var line models.CartLine
		if err := db.Where("user_id = ? AND product_id = ?", userID, input.ProductID).
			First(&line).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart line"})
			return
		}
		c.JSON(http.StatusOK, line)
	}
}

// POST /user/cart/decrement
//
// Two conditional statements instead of a read-then-write: the UPDATE only
// touches lines above quantity 1, the DELETE only lines at or below it.
// Each rides the (user_id, product_id) index atomically, so a line is
// never stored at zero and concurrent decrements cannot resurrect one.
func DecrementQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input lineInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		res := db.Model(&models.CartLine{}).
			Where("user_id = ? AND product_id = ? AND quantity > 1", userID, input.ProductID).
			UpdateColumn("quantity", gorm.Expr("quantity - 1"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart line"})
			return
		}
		if res.RowsAffected > 0 {
			var line models.CartLine
			if err := db.Where("user_id = ? AND product_id = ?", userID, input.ProductID).
				First(&line).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart line"})
				return
			}
			c.JSON(http.StatusOK, line)
			return
		}

		res = db.Where("user_id = ? AND product_id = ? AND quantity <= 1", userID, input.ProductID).
			Delete(&models.CartLine{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart line"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": true, "product_id": input.ProductID})
	}
}

// POST /user/cart/remove
func RemoveFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input lineInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		res := db.Where("user_id = ? AND product_id = ?", userID, input.ProductID).
			Delete(&models.CartLine{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart line"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// GET /user/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var lines []models.CartLine
		if err := db.Preload("Product").
			Where("user_id = ?", userID).
			Order("created_at asc").
			Find(&lines).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, lines)
	}
}

// DELETE /user/cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		if err := db.Where("user_id = ?", userID).
			Delete(&models.CartLine{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	userID, ok := v.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
