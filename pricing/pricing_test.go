package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NikoSAN02/Blacwom-website/models"
)

func TestResolvePerRole(t *testing.T) {
	product := models.Product{
		CustomerPrice:  100,
		WholesalePrice: 70,
		SalonPrice:     85,
	}

	tests := []struct {
		name string
		role models.UserType
		want float64
	}{
		{"anonymous viewer prices as customer", "", 100},
		{"customer", models.UserTypeCustomer, 100},
		{"salon", models.UserTypeSalon, 85},
		{"wholesale", models.UserTypeWholesale, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(product, tt.role))
		})
	}
}

func TestResolveMissingPriceIsZero(t *testing.T) {
	product := models.Product{CustomerPrice: 100}

	assert.Zero(t, Resolve(product, models.UserTypeWholesale))
	assert.Zero(t, Resolve(product, models.UserTypeSalon))
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, 200.0, LineTotal(100, 2))
	assert.Zero(t, LineTotal(0, 3), "missing price degrades to 0")
	assert.Zero(t, LineTotal(100, 0), "missing quantity degrades to 0")
	assert.Zero(t, LineTotal(100, -1))
}
