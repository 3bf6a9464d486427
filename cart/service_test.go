package cart

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/danielgao20/product-catalog/models"
)

const testSession = "sess_test"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A :memory: database exists per connection; pin the pool to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.BundleProduct{},
		&models.CartItem{},
	))
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int, isBundle bool) models.Product {
	t.Helper()
	p := models.Product{
		Name:       name,
		Price:      decimal.NewFromInt(price),
		IsBundle:   isBundle,
		InStock:    stock > 0,
		StockCount: stock,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

// bundleFixture builds the scenario used throughout: Product A price 10
// stock 5, Product B price 20 stock 3, Bundle X price 25 made of 1×A + 1×B.
func bundleFixture(t *testing.T, db *gorm.DB) (a, b, x models.Product) {
	t.Helper()
	a = createProduct(t, db, "Product A", 10, 5, false)
	b = createProduct(t, db, "Product B", 20, 3, false)
	x = createProduct(t, db, "Bundle X", 25, 0, true)
	for child, ratio := range map[uint]int{a.ID: 1, b.ID: 1} {
		m := models.BundleProduct{BundleID: x.ID, ChildProductID: child, QuantityRatio: ratio}
		require.NoError(t, db.Create(&m).Error)
	}
	return a, b, x
}

func findLine(c models.Cart, productID uint, child bool) *models.CartLine {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].IsBundleItem == child {
			return &c.Items[i]
		}
	}
	return nil
}

func TestAddToCartSimpleProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)
	a := createProduct(t, db, "A", 10, 5, false)

	c, err := svc.AddToCart(testSession, a.ID, 2)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	require.Equal(t, 2, c.Items[0].Quantity)
	require.True(t, c.Total.Equal(decimal.NewFromInt(20)), "got %s", c.Total)
	require.Equal(t, 1, c.ItemCount)
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)
	a := createProduct(t, db, "A", 10, 5, false)

	_, err := svc.AddToCart(testSession, a.ID, 0)
	require.ErrorIs(t, err, models.ErrInvalidQuantity)

	c, err := svc.GetCart(testSession)
	require.NoError(t, err)
	require.Empty(t, c.Items)
}

func TestAddToCartBundleCreatesChildLines(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)
	a, b, x := bundleFixture(t, db)

	c, err := svc.AddToCart(testSession, x.ID, 2)
	require.NoError(t, err)
	require.Len(t, c.Items, 3)

	parent := findLine(c, x.ID, false)
	require.NotNil(t, parent)
	require.Equal(t, 2, parent.Quantity)

	for _, child := range []models.Product{a, b} {
		line := findLine(c, child.ID, true)
		require.NotNil(t, line, "missing child line for %s", child.Name)
		require.Equal(t, 2, line.Quantity)
		require.NotNil(t, line.ParentBundleID)
		require.Equal(t, x.ID, *line.ParentBundleID)
	}

	// Children are priced into the bundle, not the total.
	require.True(t, c.Total.Equal(decimal.NewFromInt(50)), "got %s", c.Total)
	require.Equal(t, 1, c.ItemCount)
}

func TestAddToCartAccumulatesAcrossCalls(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)
	a, _, x := bundleFixture(t, db)

	_, err := svc.AddToCart(testSession, x.ID, 2)
	require.NoError(t, err)
	c, err := svc.AddToCart(testSession, x.ID, 3)
	require.NoError(t, err)

	require.Equal(t, 5, findLine(c, x.ID, false).Quantity)
	require.Equal(t, 5, findLine(c, a.ID, true).Quantity)
	require.Len(t, c.Items, 3, "repeat adds must not duplicate lines")
}

func TestSameProductTopLevelAndAsChildStaySeparate(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)
	a, _, x := bundleFixture(t, db)

	_, err := svc.AddToCart(testSession, x.ID, 1)
	require.NoError(t, err)
	c, err := svc.AddToCart(testSession, a.ID, 4)
	require.NoError(t, err)

	require.Equal(t, 4, findLine(c, a.ID, false).Quantity)
	require.Equal(t, 1, findLine(c, a.ID, true).Quantity)
	require.Equal(t, 2, c.ItemCount)
	// 25×1 for the bundle + 10×4 for the standalone A.
	require.True(t, c.Total.Equal(decimal.NewFromInt(65)), "got %s", c.Total)
}

func TestUpdateQuantityRescalesChildren(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)
	a, b, x := bundleFixture(t, db)

	_, err := svc.AddToCart(testSession, x.ID, 2)
	require.NoError(t, err)

	c, err := svc.UpdateQuantity(testSession, x.ID, 4)
	require.NoError(t, err)

	require.Equal(t, 4, findLine(c, x.ID, false).Quantity)
	require.Equal(t, 4, findLine(c, a.ID, true).Quantity)
	require.Equal(t, 4, findLine(c, b.ID, true).Quantity)
	require.True(t, c.Total.Equal(decimal.NewFromInt(100)), "got %s", c.Total)
}

// Children rescale from their current quantity, not from the membership
// ratio, so a drifted child keeps its drifted proportion.
func TestUpdateQuantityPreservesDriftedChildRatio(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)
	a, _, x := bundleFixture(t, db)

	_, err := svc.AddToCart(testSession, x.ID, 2)
	require.NoError(t, err)

	// Simulate drift: child A sits at 3 while the nominal ratio says 2.
	require.NoError(t, db.Model(&models.CartItem{}).
		Where("session_id = ? AND product_id = ? AND is_bundle_item = ?", testSession, a.ID, true).
		Update("quantity", 3).Error)

	c, err := svc.UpdateQuantity(testSession, x.ID, 4)
	require.NoError(t, err)

	// round(3 × 4 / 2) = 6, not the ratio-derived 4.
	require.Equal(t, 6, findLine(c, a.ID, true).Quantity)
}

func TestUpdateQuantityZeroBehavesAsRemove(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)
	_, _, x := bundleFixture(t, db)

	_, err := svc.AddToCart(testSession, x.ID, 2)
	require.NoError(t, err)

	c, err := svc.UpdateQuantity(testSession, x.ID, 0)
	require.NoError(t, err)
	require.Empty(t, c.Items)
}

func TestUpdateQuantityUnknownLine(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)

	_, err := svc.UpdateQuantity(testSession, 42, 3)
	require.ErrorIs(t, err, ErrLineNotFound)
}

func TestRemoveFromCartRemovesParentAndChildrenOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)
	a, _, x := bundleFixture(t, db)
	other := createProduct(t, db, "Other", 7, 9, false)

	_, err := svc.AddToCart(testSession, x.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(testSession, other.ID, 1)
	require.NoError(t, err)

	c, err := svc.RemoveFromCart(testSession, x.ID)
	require.NoError(t, err)

	require.Nil(t, findLine(c, x.ID, false))
	require.Nil(t, findLine(c, a.ID, true))
	require.NotNil(t, findLine(c, other.ID, false), "unrelated lines must survive")
	require.Equal(t, 1, c.ItemCount)
}

func TestRemoveFromCartAbsentProductIsNoop(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)
	a := createProduct(t, db, "A", 10, 5, false)

	_, err := svc.AddToCart(testSession, a.ID, 1)
	require.NoError(t, err)

	c, err := svc.RemoveFromCart(testSession, a.ID+77)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
}

func TestClearCartIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)
	_, _, x := bundleFixture(t, db)

	_, err := svc.AddToCart(testSession, x.ID, 1)
	require.NoError(t, err)

	c, err := svc.ClearCart(testSession)
	require.NoError(t, err)
	require.Empty(t, c.Items)

	c, err = svc.ClearCart(testSession)
	require.NoError(t, err)
	require.Empty(t, c.Items)
	require.True(t, c.Total.Equal(decimal.Zero))
}

func TestClearCartScopedToSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)
	a := createProduct(t, db, "A", 10, 5, false)

	_, err := svc.AddToCart("sess_one", a.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart("sess_two", a.ID, 2)
	require.NoError(t, err)

	_, err = svc.ClearCart("sess_one")
	require.NoError(t, err)

	c, err := svc.GetCart("sess_two")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
}

func TestGetCartSkipsDeletedProducts(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)
	a := createProduct(t, db, "A", 10, 5, false)
	b := createProduct(t, db, "B", 20, 3, false)

	_, err := svc.AddToCart(testSession, a.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(testSession, b.ID, 1)
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.Product{}, b.ID).Error)

	c, err := svc.GetCart(testSession)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	require.True(t, c.Total.Equal(decimal.NewFromInt(10)), "got %s", c.Total)
}
