package catalog

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/danielgao20/product-catalog/events"
	"github.com/danielgao20/product-catalog/models"
)

// PurchasedLine is one top-level cart line handed over at checkout.
type PurchasedLine struct {
	ProductID uint
	Quantity  int
	IsBundle  bool
}

// DecrementStock subtracts purchased quantities from the catalog. Bundles
// walk their memberships with the same ratio semantics as the stock
// resolver, subtracting from each simple descendant. A failure on one
// product is logged and skipped so the rest of the batch still lands.
func (s *Service) DecrementStock(lines []PurchasedLine) error {
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		if line.IsBundle {
			s.decrementBundle(line.ProductID, line.Quantity, 0)
			continue
		}
		if err := s.decrementSimple(line.ProductID, line.Quantity); err != nil {
			log.Printf("❌ Failed to decrement stock for product %d: %v", line.ProductID, err)
		}
	}

	s.events.Publish(events.Event{Type: events.StockUpdated})
	return nil
}

func (s *Service) decrementBundle(bundleID uint, quantity, depth int) {
	if depth > maxBundleDepth {
		return
	}

	var members []models.BundleProduct
	if err := s.db.Where("bundle_id = ?", bundleID).Find(&members).Error; err != nil {
		log.Printf("❌ Failed to fetch members of bundle %d: %v", bundleID, err)
		return
	}

	for _, m := range members {
		ratio := m.QuantityRatio
		if ratio < 1 {
			ratio = 1
		}
		consumed := quantity * ratio

		var child models.Product
		err := s.db.First(&child, m.ChildProductID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			continue
		case err != nil:
			log.Printf("❌ Failed to fetch child product %d: %v", m.ChildProductID, err)
			continue
		case child.IsBundle:
			s.decrementBundle(child.ID, consumed, depth+1)
		default:
			if err := s.decrementSimple(child.ID, consumed); err != nil {
				log.Printf("❌ Failed to decrement stock for product %d: %v", child.ID, err)
			}
		}
	}
}

func (s *Service) decrementSimple(productID uint, quantity int) error {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		return fmt.Errorf("fetch product %d: %w", productID, err)
	}

	newStock := product.StockCount - quantity
	if newStock < 0 {
		newStock = 0
	}

	updates := map[string]interface{}{
		"stock_count": newStock,
		"in_stock":    newStock > 0,
	}
	if err := s.db.Model(&models.Product{}).Where("id = ?", productID).Updates(updates).Error; err != nil {
		return fmt.Errorf("update stock for product %d: %w", productID, err)
	}
	return nil
}
