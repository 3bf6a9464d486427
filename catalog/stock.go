package catalog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/danielgao20/product-catalog/events"
	"github.com/danielgao20/product-catalog/models"
)

// Nested bundles resolve recursively; the cap keeps a cyclic membership
// (which creation-time validation cannot fully rule out) from hanging a
// request. A chain deeper than this resolves to 0.
const maxBundleDepth = 8

// Service answers stock and bundle questions against the catalog store.
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

// Availability is the effective stock of a product. Simple products carry
// a stored count; bundles are resolved from their children on every read,
// so callers can never pick up a stale stored column for a bundle.
type Availability interface {
	Units() int
}

type SimpleStock struct {
	Count int
}

func (s SimpleStock) Units() int { return s.Count }

type BundleStock struct {
	resolved int
}

func (b BundleStock) Units() int { return b.resolved }

func (s *Service) Availability(p models.Product) (Availability, error) {
	if !p.IsBundle {
		return SimpleStock{Count: p.StockCount}, nil
	}
	n, err := s.ResolveBundleStock(p.ID)
	if err != nil {
		return nil, err
	}
	return BundleStock{resolved: n}, nil
}

// ResolveBundleStock computes how many units of a bundle can be assembled:
// the minimum over its children of floor(childStock / quantityRatio). A
// bundle with no children resolves to 0, as does one with a missing child.
func (s *Service) ResolveBundleStock(bundleID uint) (int, error) {
	return s.resolveStock(bundleID, 0)
}

func (s *Service) resolveStock(bundleID uint, depth int) (int, error) {
	if depth > maxBundleDepth {
		return 0, nil
	}

	var members []models.BundleProduct
	if err := s.db.Where("bundle_id = ?", bundleID).Find(&members).Error; err != nil {
		return 0, fmt.Errorf("fetch bundle members for %d: %w", bundleID, err)
	}
	if len(members) == 0 {
		return 0, nil
	}

	minStock := -1
	for _, m := range members {
		childStock := 0

		var child models.Product
		err := s.db.First(&child, m.ChildProductID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// A deleted child means the bundle cannot be assembled.
		case err != nil:
			return 0, fmt.Errorf("fetch child product %d: %w", m.ChildProductID, err)
		case child.IsBundle:
			childStock, err = s.resolveStock(child.ID, depth+1)
			if err != nil {
				return 0, err
			}
		default:
			childStock = child.StockCount
		}

		ratio := m.QuantityRatio
		if ratio < 1 {
			ratio = 1
		}
		if q := childStock / ratio; minStock == -1 || q < minStock {
			minStock = q
		}
	}

	if minStock < 0 {
		minStock = 0
	}
	return minStock, nil
}
