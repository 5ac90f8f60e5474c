// Package pricing maps an account type to the list price that applies
// to it. There is no fallback chain: a missing list price resolves to
// zero and callers treat that as "price not available", not an error.
package pricing

import "github.com/NikoSAN02/Blacwom-website/models"

// Resolve returns the unit price of p for the given account type.
// An empty role (unauthenticated viewer) prices like a customer.
func Resolve(p models.Product, role models.UserType) float64 {
	switch role {
	case models.UserTypeSalon:
		return p.SalonPrice
	case models.UserTypeWholesale:
		return p.WholesalePrice
	default:
		return p.CustomerPrice
	}
}

// LineTotal multiplies a resolved price by a quantity, degrading to 0
// for missing prices or non-positive quantities so cart rendering stays
// robust against partially loaded product data.
func LineTotal(price float64, quantity int) float64 {
	if price <= 0 || quantity <= 0 {
		return 0
	}
	return price * float64(quantity)
}
