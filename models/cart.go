package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrMissingParent   = errors.New("bundle child item requires a parent bundle id")
)

// CartItem is one line in a session's cart. A line is either top-level
// (IsBundleItem false, no parent) or a bundle child (IsBundleItem true,
// ParentBundleID set). Use NewCartItem / NewChildCartItem so the pairing
// is enforced at construction instead of by convention.
type CartItem struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID      string    `gorm:"index;not null" json:"-"`
	ProductID      uint      `gorm:"not null" json:"productId"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	IsBundleItem   bool      `gorm:"not null;default:false" json:"isBundleItem"`
	ParentBundleID *uint     `json:"parentBundleId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func NewCartItem(sessionID string, productID uint, quantity int) (CartItem, error) {
	if quantity <= 0 {
		return CartItem{}, ErrInvalidQuantity
	}
	return CartItem{
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  quantity,
	}, nil
}

func NewChildCartItem(sessionID string, productID uint, quantity int, parentBundleID uint) (CartItem, error) {
	if quantity <= 0 {
		return CartItem{}, ErrInvalidQuantity
	}
	if parentBundleID == 0 {
		return CartItem{}, ErrMissingParent
	}
	return CartItem{
		SessionID:      sessionID,
		ProductID:      productID,
		Quantity:       quantity,
		IsBundleItem:   true,
		ParentBundleID: &parentBundleID,
	}, nil
}

// CartLine is a cart item joined with its product for display.
type CartLine struct {
	CartItem
	Product Product `json:"product"`
}

// Cart is the full reloaded view of a session's cart. Total and ItemCount
// are recomputed from the lines on every load, never patched in place.
type Cart struct {
	Items     []CartLine      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}
