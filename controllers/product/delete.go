package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peterdinis/Wheel-Verse/models"
	"gorm.io/gorm"
)

// DELETE /admin/products/:id
//
// Cart lines referencing the product go with it, inside one transaction.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("product_id = ?", id).
				Delete(&models.CartLine{}).Error; err != nil {
				return err
			}
			res := tx.Delete(&models.Product{}, "id = ?", id)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		})
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
