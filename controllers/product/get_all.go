package productcontroller

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NikoSAN02/Blacwom-website/auth"
	"github.com/NikoSAN02/Blacwom-website/cache"
	"github.com/NikoSAN02/Blacwom-website/middleware"
	"github.com/NikoSAN02/Blacwom-website/models"
	"github.com/NikoSAN02/Blacwom-website/pricing"
)

const catalogCacheKey = "products:all"

// viewerRole resolves the account type for price selection. Anonymous
// viewers and lookup failures price as customers.
func viewerRole(c *gin.Context, db *gorm.DB) models.UserType {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return ""
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return ""
	}
	role, _, err := auth.ResolveRole(db, userID)
	if err != nil {
		return ""
	}
	return role
}

func resolvePrices(products []models.Product, role models.UserType) {
	for i := range products {
		products[i].Price = pricing.Resolve(products[i], role)
	}
}

// invalidateCatalogCache is called after every admin catalog write.
func invalidateCatalogCache(rdb *cache.Redis) {
	if err := rdb.Del(context.Background(), catalogCacheKey); err != nil {
		log.Printf("⚠️ Failed to invalidate catalog cache: %v", err)
	}
}

// GET /products
func GetProducts(db *gorm.DB, rdb *cache.Redis) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		category := c.Query("category")
		minPriceStr := c.Query("min_price")
		maxPriceStr := c.Query("max_price")
		sortBy := c.DefaultQuery("sort_by", "created_at")
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		role := viewerRole(c, db)

		// The unfiltered default listing is the hot path; serve it from
		// Redis when warm. Prices are resolved per viewer after the hit.
		unfiltered := search == "" && category == "" && minPriceStr == "" && maxPriceStr == "" &&
			sortBy == "created_at" && sortOrder == "desc"
		if unfiltered {
			var cached []models.Product
			if found, err := rdb.GetJSON(c.Request.Context(), catalogCacheKey, &cached); err == nil && found {
				resolvePrices(cached, role)
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		query := db.Model(&models.Product{})

		if search != "" {
			likePattern := "%" + search + "%"
			query = query.Where(
				"name ILIKE ? OR brand ILIKE ? OR description ILIKE ?",
				likePattern, likePattern, likePattern,
			)
		}
		if category != "" {
			query = query.Where("category = ?", category)
		}
		if minPriceStr != "" {
			if mp, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
				query = query.Where("customer_price >= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
		}
		if maxPriceStr != "" {
			if mp, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
				query = query.Where("customer_price <= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
		}

		switch sortBy {
		case "created_at", "customer_price", "name", "brand":
		default:
			sortBy = "created_at"
		}
		orderClause := fmt.Sprintf("%s %s", sortBy, sortOrder)

		var products []models.Product
		if err := query.Order(orderClause).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		if unfiltered {
			if err := rdb.SetJSON(c.Request.Context(), catalogCacheKey, products, catalogCacheTTL); err != nil {
				log.Printf("⚠️ Failed to cache catalog: %v", err)
			}
		}

		resolvePrices(products, role)
		c.JSON(http.StatusOK, products)
	}
}
