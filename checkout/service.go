package checkout

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danielgao20/product-catalog/cart"
	"github.com/danielgao20/product-catalog/catalog"
	"github.com/danielgao20/product-catalog/models"
)

var (
	ErrInvalidPromo = errors.New("invalid promo code")
	ErrEmptyCart    = errors.New("cart is empty")
)

type Service struct {
	db      *gorm.DB
	catalog *catalog.Service
	cart    *cart.Service
}

func NewService(db *gorm.DB, catalogSvc *catalog.Service, cartSvc *cart.Service) *Service {
	return &Service{db: db, catalog: catalogSvc, cart: cartSvc}
}

// PlaceOrder snapshots the session's cart into an order, decrements stock
// for the purchased top-level lines (bundles cascade through their
// memberships), and clears the cart. Requires a valid promo code.
func (s *Service) PlaceOrder(sessionID, promoCode string) (*models.Order, error) {
	if !ValidPromoCode(promoCode) {
		return nil, ErrInvalidPromo
	}

	current, err := s.cart.GetCart(sessionID)
	if err != nil {
		return nil, err
	}
	if current.ItemCount == 0 {
		return nil, ErrEmptyCart
	}

	// The FREE promo waives the whole order.
	subtotal := current.Total
	discount := subtotal

	order := models.Order{
		OrderNumber: generateOrderNumber(),
		SessionID:   sessionID,
		PromoCode:   NormalizePromoCode(promoCode),
		Subtotal:    subtotal,
		Discount:    discount,
		Total:       subtotal.Sub(discount),
	}

	var purchased []catalog.PurchasedLine
	for _, line := range current.Items {
		if line.IsBundleItem {
			continue
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.Product.Name,
			UnitPrice:   line.Product.Price,
			Quantity:    line.Quantity,
			IsBundle:    line.Product.IsBundle,
		})
		purchased = append(purchased, catalog.PurchasedLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			IsBundle:  line.Product.IsBundle,
		})
	}

	if err := s.db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.catalog.DecrementStock(purchased); err != nil {
		return nil, err
	}
	if _, err := s.cart.ClearCart(sessionID); err != nil {
		return nil, err
	}

	return &order, nil
}

// Example: 20250908130500-<uuid4>
func generateOrderNumber() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}
