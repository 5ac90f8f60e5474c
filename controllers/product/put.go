package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NikoSAN02/Blacwom-website/cache"
	"github.com/NikoSAN02/Blacwom-website/models"
)

type UpdateProductInput struct {
	Name           *string         `json:"name"`
	Brand          *string         `json:"brand"`
	CustomerPrice  *float64        `json:"customer_price"`
	WholesalePrice *float64        `json:"wholesale_price"`
	SalonPrice     *float64        `json:"salon_price"`
	ImageURL       *string         `json:"image_url"`
	Category       *string         `json:"category"`
	Description    *string         `json:"description"`
	Benefits       *[]string       `json:"benefits"`
	SuggestedUse   *string         `json:"suggested_use"`
	Specifications *map[string]any `json:"specifications"`
	Stock          *int            `json:"stock"`
}

// PUT /admin/products/:id
// Partial update; list price changes here never touch existing orders,
// whose line items carry their own price snapshots.
func UpdateProduct(db *gorm.DB, rdb *cache.Redis) gin.HandlerFunc {
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

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Brand != nil {
			product.Brand = *input.Brand
		}
		if input.CustomerPrice != nil {
			product.CustomerPrice = *input.CustomerPrice
		}
		if input.WholesalePrice != nil {
			product.WholesalePrice = *input.WholesalePrice
		}
		if input.SalonPrice != nil {
			product.SalonPrice = *input.SalonPrice
		}
		if input.ImageURL != nil {
			product.ImageURL = *input.ImageURL
		}
		if input.Category != nil {
			product.Category = *input.Category
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Benefits != nil {
			product.Benefits = *input.Benefits
		}
		if input.SuggestedUse != nil {
			product.SuggestedUse = *input.SuggestedUse
		}
		if input.Specifications != nil {
			product.Specifications = *input.Specifications
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
				return
			}
			product.Stock = *input.Stock
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		invalidateCatalogCache(rdb)
		c.JSON(http.StatusOK, product)
	}
}
