package catalog

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/danielgao20/product-catalog/models"
)

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

func addMember(t *testing.T, db *gorm.DB, bundleID, childID uint, ratio int) {
	t.Helper()
	m := models.BundleProduct{BundleID: bundleID, ChildProductID: childID, QuantityRatio: ratio}
	require.NoError(t, db.Create(&m).Error)
}

func TestResolveBundleStockMinOfFlooredQuotients(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)

	a := createProduct(t, db, "Product A", 10, 5, false)
	b := createProduct(t, db, "Product B", 20, 3, false)
	x := createProduct(t, db, "Bundle X", 25, 0, true)
	addMember(t, db, x.ID, a.ID, 1)
	addMember(t, db, x.ID, b.ID, 1)

	n, err := svc.ResolveBundleStock(x.ID)
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestResolveBundleStockFloorsByRatio(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)

	a := createProduct(t, db, "A", 10, 5, false)
	b := createProduct(t, db, "B", 20, 9, false)
	x := createProduct(t, db, "X", 25, 0, true)
	addMember(t, db, x.ID, a.ID, 2) // floor(5/2) = 2
	addMember(t, db, x.ID, b.ID, 3) // floor(9/3) = 3

	n, err := svc.ResolveBundleStock(x.ID)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestResolveBundleStockNoChildren(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)

	x := createProduct(t, db, "X", 25, 0, true)

	n, err := svc.ResolveBundleStock(x.ID)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestResolveBundleStockMissingChildMeansZero(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)

	a := createProduct(t, db, "A", 10, 5, false)
	x := createProduct(t, db, "X", 25, 0, true)
	addMember(t, db, x.ID, a.ID, 1)
	addMember(t, db, x.ID, a.ID+1000, 1) // never existed

	n, err := svc.ResolveBundleStock(x.ID)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestResolveBundleStockExhaustedChild(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)

	a := createProduct(t, db, "A", 10, 7, false)
	b := createProduct(t, db, "B", 20, 0, false)
	x := createProduct(t, db, "X", 25, 0, true)
	addMember(t, db, x.ID, a.ID, 1)
	addMember(t, db, x.ID, b.ID, 1)

	n, err := svc.ResolveBundleStock(x.ID)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestResolveBundleStockNestedBundle(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)

	a := createProduct(t, db, "A", 10, 6, false)
	inner := createProduct(t, db, "Inner", 15, 0, true)
	addMember(t, db, inner.ID, a.ID, 2) // inner resolves to 3

	b := createProduct(t, db, "B", 20, 10, false)
	outer := createProduct(t, db, "Outer", 30, 0, true)
	addMember(t, db, outer.ID, inner.ID, 1)
	addMember(t, db, outer.ID, b.ID, 4) // floor(10/4) = 2

	n, err := svc.ResolveBundleStock(outer.ID)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestAvailabilityUsesDerivedStockForBundles(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)

	a := createProduct(t, db, "A", 10, 4, false)
	x := createProduct(t, db, "X", 25, 0, true)
	addMember(t, db, x.ID, a.ID, 1)

	// Stale stored column must never leak out for bundles.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", x.ID).
		Update("stock_count", 99).Error)
	require.NoError(t, db.First(&x, x.ID).Error)

	avail, err := svc.Availability(x)
	require.NoError(t, err)
	require.IsType(t, BundleStock{}, avail)
	require.Equal(t, 4, avail.Units())

	simple, err := svc.Availability(a)
	require.NoError(t, err)
	require.IsType(t, SimpleStock{}, simple)
	require.Equal(t, 4, simple.Units())
}
