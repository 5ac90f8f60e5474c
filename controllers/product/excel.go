package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/NikoSAN02/Blacwom-website/cache"
	"github.com/NikoSAN02/Blacwom-website/models"
)

// Column layout shared by import and export:
// ID, Name, Brand, CustomerPrice, WholesalePrice, SalonPrice,
// Category, Description, SuggestedUse, Benefits (";"-separated),
// ImageURL, Stock

// POST /admin/products/import-excel
func ImportProductsFromExcel(db *gorm.DB, rdb *cache.Redis) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			idStr := get(0)
			name := get(1)
			brand := get(2)
			customerPrice, err1 := strconv.ParseFloat(get(3), 64)
			wholesalePrice, _ := strconv.ParseFloat(get(4), 64)
			salonPrice, _ := strconv.ParseFloat(get(5), 64)
			category := get(6)
			description := get(7)
			suggestedUse := get(8)
			benefitsStr := get(9)
			imageURL := get(10)
			stock, _ := strconv.Atoi(get(11))

			if name == "" || err1 != nil {
				skippedCount++
				continue
			}

			var benefits []string
			for _, part := range strings.Split(benefitsStr, ";") {
				if part = strings.TrimSpace(part); part != "" {
					benefits = append(benefits, part)
				}
			}

			product := models.Product{
				Name:           name,
				Brand:          brand,
				CustomerPrice:  customerPrice,
				WholesalePrice: wholesalePrice,
				SalonPrice:     salonPrice,
				Category:       category,
				Description:    description,
				SuggestedUse:   suggestedUse,
				Benefits:       benefits,
				ImageURL:       imageURL,
				Stock:          stock,
			}

			if idStr != "" {
				if id, err := strconv.Atoi(idStr); err == nil {
					var existing models.Product
					if err := db.First(&existing, id).Error; err == nil {
						product.ID = existing.ID
						product.CreatedAt = existing.CreatedAt
						if err := db.Save(&product).Error; err == nil {
							updatedCount++
							continue
						}
						skippedCount++
						continue
					}
				}
			}

			if err := db.Create(&product).Error; err == nil {
				createdCount++
			} else {
				skippedCount++
			}
		}

		invalidateCatalogCache(rdb)
		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": createdCount,
			"updated_count": updatedCount,
			"skipped_count": skippedCount,
		})
	}
}
