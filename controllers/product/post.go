package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NikoSAN02/Blacwom-website/cache"
	"github.com/NikoSAN02/Blacwom-website/models"
)

type CreateProductInput struct {
	Name           string         `json:"name" binding:"required"`
	Brand          string         `json:"brand"`
	CustomerPrice  float64        `json:"customer_price" binding:"required,gte=0"`
	WholesalePrice float64        `json:"wholesale_price" binding:"gte=0"`
	SalonPrice     float64        `json:"salon_price" binding:"gte=0"`
	ImageURL       string         `json:"image_url"`
	Category       string         `json:"category"`
	Description    string         `json:"description"`
	Benefits       []string       `json:"benefits"`
	SuggestedUse   string         `json:"suggested_use"`
	Specifications map[string]any `json:"specifications"`
	Stock          int            `json:"stock" binding:"gte=0"`
}

// POST /admin/products
func CreateProduct(db *gorm.DB, rdb *cache.Redis) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product := models.Product{
			Name:           input.Name,
			Brand:          input.Brand,
			CustomerPrice:  input.CustomerPrice,
			WholesalePrice: input.WholesalePrice,
			SalonPrice:     input.SalonPrice,
			ImageURL:       input.ImageURL,
			Category:       input.Category,
			Description:    input.Description,
			Benefits:       input.Benefits,
			SuggestedUse:   input.SuggestedUse,
			Specifications: input.Specifications,
			Stock:          input.Stock,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		invalidateCatalogCache(rdb)
		c.JSON(http.StatusCreated, product)
	}
}
