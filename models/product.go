package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	ImageURL    string          `json:"imageUrl"`
	IsBundle    bool            `gorm:"not null;default:false" json:"isBundle"`
	Details     string          `json:"details"`
	Features    pq.StringArray  `gorm:"type:text[]" json:"features"`
	InStock     bool            `gorm:"not null;default:true" json:"inStock"`
	// StockCount is authoritative for simple products only. For bundles the
	// effective count is derived from the children on every read.
	StockCount int            `json:"stockCount"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BundleProduct links a bundle to one of its child products. QuantityRatio
// is how many units of the child one bundle unit consumes; it is validated
// to be positive before a row is ever written.
type BundleProduct struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BundleID       uint      `gorm:"index;not null" json:"bundleId"`
	ChildProductID uint      `gorm:"not null" json:"childProductId"`
	QuantityRatio  int       `gorm:"not null;default:1" json:"quantityRatio"`
	CreatedAt      time.Time `json:"createdAt"`
}
