package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string          `gorm:"unique;not null" json:"orderNumber"`
	SessionID   string          `gorm:"index;not null" json:"-"`
	PromoCode   string          `json:"promoCode"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2)" json:"subtotal"`
	Discount    decimal.Decimal `gorm:"type:numeric(12,2)" json:"discount"`
	Total       decimal.Decimal `gorm:"type:numeric(12,2)" json:"total"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// OrderItem snapshots one purchased line so later catalog edits cannot
// rewrite order history.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uint            `gorm:"index;not null" json:"-"`
	ProductID   uint            `gorm:"not null" json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2)" json:"unitPrice"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	IsBundle    bool            `json:"isBundle"`
}
