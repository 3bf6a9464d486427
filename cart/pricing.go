package cart

import (
	"github.com/shopspring/decimal"

	"github.com/danielgao20/product-catalog/models"
)

// Total sums price × quantity over top-level lines only. Bundle children
// contribute nothing; their cost is already in the bundle's price.
func Total(items []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.IsBundleItem {
			continue
		}
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// ItemCount is the number of distinct top-level lines, not summed
// quantities.
func ItemCount(items []models.CartLine) int {
	n := 0
	for _, item := range items {
		if !item.IsBundleItem {
			n++
		}
	}
	return n
}
