package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/danielgao20/product-catalog/models"
)

func line(price int64, qty int, child bool) models.CartLine {
	item := models.CartItem{Quantity: qty, IsBundleItem: child}
	return models.CartLine{
		CartItem: item,
		Product:  models.Product{Price: decimal.NewFromInt(price)},
	}
}

func TestTotalExcludesBundleChildren(t *testing.T) {
	lines := []models.CartLine{
		line(25, 2, false),
		line(10, 2, true), // any price, must not count
		line(20, 2, true),
	}
	require.True(t, Total(lines).Equal(decimal.NewFromInt(50)), "got %s", Total(lines))
}

func TestItemCountCountsTopLevelLines(t *testing.T) {
	lines := []models.CartLine{
		line(25, 2, false),
		line(10, 2, true),
		line(20, 2, true),
		line(5, 7, false),
	}
	require.Equal(t, 2, ItemCount(lines))
}

func TestEmptyCartTotals(t *testing.T) {
	require.True(t, Total(nil).Equal(decimal.Zero))
	require.Equal(t, 0, ItemCount(nil))
}
