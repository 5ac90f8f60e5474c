package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NikoSAN02/Blacwom-website/cache"
	"github.com/NikoSAN02/Blacwom-website/models"
)

// DELETE /admin/products/:id
// Soft delete: existing order items keep their snapshots either way,
// but the row stays recoverable.
func DeleteProduct(db *gorm.DB, rdb *cache.Redis) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		result := db.Delete(&models.Product{}, "id = ?", id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		invalidateCatalogCache(rdb)
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
