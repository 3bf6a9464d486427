package cart

import (
	"errors"
	"fmt"
	"log"
	"math"

	"gorm.io/gorm"

	"github.com/danielgao20/product-catalog/events"
	"github.com/danielgao20/product-catalog/models"
)

var ErrLineNotFound = errors.New("cart line not found")

// Service keeps a session's cart lines synchronized, cascading bundle
// operations to the bundle's child lines. Every mutation finishes with a
// full reload so totals always reflect persisted state.
type Service struct {
	db     *gorm.DB
	events events.Publisher
}

func NewService(db *gorm.DB, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{db: db, events: pub}
}

// AddToCart increments the top-level line for the product (creating it if
// absent) and, for a bundle, upserts one child line per membership with
// quantity × ratio. Child quantities accumulate across calls the same way
// the parent's do.
func (s *Service) AddToCart(sessionID string, productID uint, quantity int) (models.Cart, error) {
	if quantity <= 0 {
		return models.Cart{}, models.ErrInvalidQuantity
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		return models.Cart{}, fmt.Errorf("fetch product %d: %w", productID, err)
	}

	if err := s.upsertLine(sessionID, productID, quantity, nil); err != nil {
		return models.Cart{}, err
	}

	if product.IsBundle {
		var members []models.BundleProduct
		if err := s.db.Where("bundle_id = ?", productID).Find(&members).Error; err != nil {
			return models.Cart{}, fmt.Errorf("fetch bundle members for %d: %w", productID, err)
		}
		for _, m := range members {
			ratio := m.QuantityRatio
			if ratio < 1 {
				ratio = 1
			}
			if err := s.upsertLine(sessionID, m.ChildProductID, quantity*ratio, &product.ID); err != nil {
				// Best effort per child; the next full reload repairs
				// whatever is missing.
				log.Printf("❌ Failed to sync bundle child %d: %v", m.ChildProductID, err)
			}
		}
	}

	s.events.Publish(events.Event{Type: events.CartUpdated})
	return s.GetCart(sessionID)
}

// upsertLine adds delta to an existing matching line or inserts a new one.
// Lines match on product, child flag, and parent, so the same product can
// appear once top-level and once per parent bundle.
func (s *Service) upsertLine(sessionID string, productID uint, delta int, parentBundleID *uint) error {
	query := s.db.Where("session_id = ? AND product_id = ? AND is_bundle_item = ?",
		sessionID, productID, parentBundleID != nil)
	if parentBundleID != nil {
		query = query.Where("parent_bundle_id = ?", *parentBundleID)
	} else {
		query = query.Where("parent_bundle_id IS NULL")
	}

	var existing models.CartItem
	err := query.First(&existing).Error
	switch {
	case err == nil:
		existing.Quantity += delta
		if err := s.db.Save(&existing).Error; err != nil {
			return fmt.Errorf("update cart line %d: %w", existing.ID, err)
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		var item models.CartItem
		var cerr error
		if parentBundleID != nil {
			item, cerr = models.NewChildCartItem(sessionID, productID, delta, *parentBundleID)
		} else {
			item, cerr = models.NewCartItem(sessionID, productID, delta)
		}
		if cerr != nil {
			return cerr
		}
		if err := s.db.Create(&item).Error; err != nil {
			return fmt.Errorf("create cart line: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("fetch cart line: %w", err)
	}
}

// UpdateQuantity sets the top-level line to newQuantity exactly. For a
// bundle, each child is rescaled by round(oldChild × newQuantity /
// oldQuantity), preserving whatever ratio the child currently has rather
// than recomputing from the membership ratio. A quantity of zero or less
// behaves as removal.
func (s *Service) UpdateQuantity(sessionID string, productID uint, newQuantity int) (models.Cart, error) {
	if newQuantity <= 0 {
		return s.RemoveFromCart(sessionID, productID)
	}

	var item models.CartItem
	err := s.db.Where("session_id = ? AND product_id = ? AND is_bundle_item = ?",
		sessionID, productID, false).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Cart{}, ErrLineNotFound
		}
		return models.Cart{}, fmt.Errorf("fetch cart line: %w", err)
	}

	oldQuantity := item.Quantity
	item.Quantity = newQuantity
	if err := s.db.Save(&item).Error; err != nil {
		return models.Cart{}, fmt.Errorf("update cart line %d: %w", item.ID, err)
	}

	var children []models.CartItem
	if err := s.db.Where("session_id = ? AND parent_bundle_id = ?", sessionID, productID).
		Find(&children).Error; err != nil {
		return models.Cart{}, fmt.Errorf("fetch child lines: %w", err)
	}
	for _, child := range children {
		scaled := int(math.Round(float64(child.Quantity) * float64(newQuantity) / float64(oldQuantity)))
		if scaled <= 0 {
			if err := s.db.Delete(&models.CartItem{}, child.ID).Error; err != nil {
				log.Printf("❌ Failed to drop child line %d: %v", child.ID, err)
			}
			continue
		}
		if err := s.db.Model(&models.CartItem{}).Where("id = ?", child.ID).
			Update("quantity", scaled).Error; err != nil {
			log.Printf("❌ Failed to rescale child line %d: %v", child.ID, err)
		}
	}

	s.events.Publish(events.Event{Type: events.CartUpdated})
	return s.GetCart(sessionID)
}

// RemoveFromCart deletes the top-level line for the product together with
// every child line whose parent is that product, as one statement.
// Removing an absent product is a no-op.
func (s *Service) RemoveFromCart(sessionID string, productID uint) (models.Cart, error) {
	err := s.db.Where("session_id = ? AND ((product_id = ? AND is_bundle_item = ?) OR parent_bundle_id = ?)",
		sessionID, productID, false, productID).Delete(&models.CartItem{}).Error
	if err != nil {
		return models.Cart{}, fmt.Errorf("delete cart lines: %w", err)
	}

	s.events.Publish(events.Event{Type: events.CartUpdated})
	return s.GetCart(sessionID)
}

// ClearCart deletes every line for the session. Safe to call on an empty
// cart.
func (s *Service) ClearCart(sessionID string) (models.Cart, error) {
	if err := s.db.Where("session_id = ?", sessionID).Delete(&models.CartItem{}).Error; err != nil {
		return models.Cart{}, fmt.Errorf("clear cart: %w", err)
	}

	s.events.Publish(events.Event{Type: events.CartUpdated})
	return s.GetCart(sessionID)
}

// GetCart reloads the session's lines in insertion order and recomputes
// total and item count from scratch. Lines whose product has been deleted
// are skipped rather than failing the whole read.
func (s *Service) GetCart(sessionID string) (models.Cart, error) {
	var items []models.CartItem
	if err := s.db.Where("session_id = ?", sessionID).Order("created_at asc, id asc").
		Find(&items).Error; err != nil {
		return models.Cart{}, fmt.Errorf("fetch cart lines: %w", err)
	}

	lines := make([]models.CartLine, 0, len(items))
	for _, item := range items {
		var product models.Product
		err := s.db.First(&product, item.ProductID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			continue
		case err != nil:
			return models.Cart{}, fmt.Errorf("fetch product %d: %w", item.ProductID, err)
		}
		lines = append(lines, models.CartLine{CartItem: item, Product: product})
	}

	return models.Cart{
		Items:     lines,
		Total:     Total(lines),
		ItemCount: ItemCount(lines),
	}, nil
}
