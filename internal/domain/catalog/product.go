package catalog

import (
	"strings"

	"github.com/atelie/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a sellable item. Prices stored here are the live
// catalog values; orders copy them into immutable item snapshots at
// creation time.
type Product struct {
	shared.OwnedAggregateRoot
	Name               string
	SalePrice          decimal.Decimal
	CostPrice          *decimal.Decimal
	StockQuantity      int
	ProductionTimeDays int
	Active             bool
}

// NewProduct creates a new active product
func NewProduct(ownerID uuid.UUID, name string, salePrice decimal.Decimal, costPrice *decimal.Decimal, stockQuantity, productionTimeDays int) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("Product name cannot be empty")
	}
	if salePrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("Sale price must be positive")
	}
	if costPrice != nil && costPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("Cost price must be positive when provided")
	}
	if stockQuantity < 0 {
		return nil, shared.NewValidationError("Stock quantity cannot be negative")
	}
	if productionTimeDays < 0 {
		return nil, shared.NewValidationError("Production time cannot be negative")
	}

	return &Product{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               strings.TrimSpace(name),
		SalePrice:          salePrice,
		CostPrice:          costPrice,
		StockQuantity:      stockQuantity,
		ProductionTimeDays: productionTimeDays,
		Active:             true,
	}, nil
}

// Update changes the product's catalog values. Existing order snapshots
// are unaffected.
func (p *Product) Update(name *string, salePrice, costPrice *decimal.Decimal, stockQuantity, productionTimeDays *int) error {
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return shared.NewValidationError("Product name cannot be empty")
		}
		p.Name = strings.TrimSpace(*name)
	}
	if salePrice != nil {
		if salePrice.LessThanOrEqual(decimal.Zero) {
			return shared.NewValidationError("Sale price must be positive")
		}
		p.SalePrice = *salePrice
	}
	if costPrice != nil {
		if costPrice.LessThanOrEqual(decimal.Zero) {
			return shared.NewValidationError("Cost price must be positive when provided")
		}
		p.CostPrice = costPrice
	}
	if stockQuantity != nil {
		if *stockQuantity < 0 {
			return shared.NewValidationError("Stock quantity cannot be negative")
		}
		p.StockQuantity = *stockQuantity
	}
	if productionTimeDays != nil {
		if *productionTimeDays < 0 {
			return shared.NewValidationError("Production time cannot be negative")
		}
		p.ProductionTimeDays = *productionTimeDays
	}

	p.Touch()

	return nil
}

// Deactivate soft-deletes the product. Inactive products cannot be added
// to new orders but remain referenced by existing snapshots.
func (p *Product) Deactivate() {
	p.Active = false
	p.Touch()
}

// Activate re-enables the product for new orders
func (p *Product) Activate() {
	p.Active = true
	p.Touch()
}

// UnitCost returns the cost price or zero when none is registered
func (p *Product) UnitCost() decimal.Decimal {
	if p.CostPrice == nil {
		return decimal.Zero
	}
	return *p.CostPrice
}
