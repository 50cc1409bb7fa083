package service

import (
	"github.com/dreamworldhq/storefront/internal/models"
)

// DefaultTaxRate is applied when the configuration does not override it.
const DefaultTaxRate = 0.08

// ComputeTotals computes subtotal, tax and total for a list of line items.
// Pure and deterministic: it is called for the live cart on the checkout
// summary and again for the frozen snapshot, and must agree with itself.
// No rounding happens here; presentation layers round for display only.
func ComputeTotals(items []models.LineItem, taxRate float64) models.Totals {

	var subtotal float64

	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	tax := subtotal * taxRate

	return models.Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}
