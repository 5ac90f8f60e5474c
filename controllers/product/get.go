package productcontroller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NikoSAN02/Blacwom-website/models"
	"github.com/NikoSAN02/Blacwom-website/pricing"
)

const catalogCacheTTL = 5 * time.Minute

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		product.Price = pricing.Resolve(product, viewerRole(c, db))
		c.JSON(http.StatusOK, product)
	}
}
