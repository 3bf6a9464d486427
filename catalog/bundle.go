package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/danielgao20/product-catalog/models"
)

var (
	ErrInvalidRatio  = errors.New("quantity ratio must be positive")
	ErrSelfReference = errors.New("a bundle cannot contain itself")
	ErrNotABundle    = errors.New("product is not a bundle")
)

// BundleChild is a membership row joined with its child product. Product
// is nil when the child has been deleted from the catalog.
type BundleChild struct {
	models.BundleProduct
	Product *models.Product `json:"childProduct,omitempty"`
}

func (s *Service) BundleChildren(bundleID uint) ([]BundleChild, error) {
	var members []models.BundleProduct
	if err := s.db.Where("bundle_id = ?", bundleID).Order("created_at asc").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("fetch bundle members for %d: %w", bundleID, err)
	}

	children := make([]BundleChild, 0, len(members))
	for _, m := range members {
		child := BundleChild{BundleProduct: m}
		var p models.Product
		err := s.db.First(&p, m.ChildProductID).Error
		switch {
		case err == nil:
			child.Product = &p
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("fetch child product %d: %w", m.ChildProductID, err)
		}
		children = append(children, child)
	}
	return children, nil
}

// AddBundleChild validates and records a membership. Invalid ratios and
// self references are rejected before anything is written.
func (s *Service) AddBundleChild(bundleID, childProductID uint, ratio int) (*models.BundleProduct, error) {
	if ratio <= 0 {
		return nil, ErrInvalidRatio
	}
	if bundleID == childProductID {
		return nil, ErrSelfReference
	}

	var bundle models.Product
	if err := s.db.First(&bundle, bundleID).Error; err != nil {
		return nil, fmt.Errorf("fetch bundle %d: %w", bundleID, err)
	}
	if !bundle.IsBundle {
		return nil, ErrNotABundle
	}
	var child models.Product
	if err := s.db.First(&child, childProductID).Error; err != nil {
		return nil, fmt.Errorf("fetch child product %d: %w", childProductID, err)
	}

	member := models.BundleProduct{
		BundleID:       bundleID,
		ChildProductID: childProductID,
		QuantityRatio:  ratio,
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, fmt.Errorf("create bundle member: %w", err)
	}
	return &member, nil
}

func (s *Service) RemoveBundleChild(bundleID, childProductID uint) error {
	result := s.db.Where("bundle_id = ? AND child_product_id = ?", bundleID, childProductID).
		Delete(&models.BundleProduct{})
	if result.Error != nil {
		return fmt.Errorf("delete bundle member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Savings compares a bundle's price against buying its parts separately.
type Savings struct {
	TotalChildPrice decimal.Decimal `json:"totalChildPrice"`
	BundlePrice     decimal.Decimal `json:"bundlePrice"`
	Savings         decimal.Decimal `json:"savings"`
}

// BundleSavings is Σ(childPrice × ratio) − bundlePrice. A negative result
// (bundle priced above its parts) is reported as-is, never clamped.
func (s *Service) BundleSavings(bundleID uint) (Savings, error) {
	var bundle models.Product
	if err := s.db.First(&bundle, bundleID).Error; err != nil {
		return Savings{}, fmt.Errorf("fetch bundle %d: %w", bundleID, err)
	}

	children, err := s.BundleChildren(bundleID)
	if err != nil {
		return Savings{}, err
	}

	total := decimal.Zero
	for _, c := range children {
		if c.Product == nil {
			continue
		}
		total = total.Add(c.Product.Price.Mul(decimal.NewFromInt(int64(c.QuantityRatio))))
	}

	return Savings{
		TotalChildPrice: total,
		BundlePrice:     bundle.Price,
		Savings:         total.Sub(bundle.Price),
	}, nil
}
