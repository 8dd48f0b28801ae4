package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductKind distinguishes physical goods from services sold at the
// point of sale. Only physical goods participate in stock control.
type ProductKind string

const (
	// ProductKindGood is a physical product that may track stock
	ProductKindGood ProductKind = "PRODUCT"
	// ProductKindService is a service (grooming, appointments, etc.) that never touches inventory
	ProductKindService ProductKind = "SERVICE"
)

// IsValid returns true if the kind is a known kind
func (k ProductKind) IsValid() bool {
	switch k {
	case ProductKindGood, ProductKindService:
		return true
	}
	return false
}

// String returns the string representation of ProductKind
func (k ProductKind) String() string {
	return string(k)
}

// Product is anything that can be sold: physical goods or services.
// Stock-tracking products consume inventory lots on sale; everything else
// is sold without touching the ledger.
type Product struct {
	shared.TenantEntity
	Name        string
	Kind        ProductKind
	SalePrice   decimal.Decimal
	TracksStock bool
	MinStock    decimal.Decimal // below this the product shows on the replenishment report; zero means no threshold
	Active      bool
}

// NewProduct creates an active product
func NewProduct(tenantID uuid.UUID, name string, kind ProductKind, salePrice decimal.Decimal, tracksStock bool) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "product name is required")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError(shared.CodeValidation, "unknown product kind: "+string(kind))
	}
	if salePrice.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "sale price cannot be negative")
	}
	if kind == ProductKindService && tracksStock {
		return nil, shared.NewDomainError(shared.CodeValidation, "services cannot track stock")
	}
	return &Product{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Name:         name,
		Kind:         kind,
		SalePrice:    salePrice,
		TracksStock:  tracksStock,
		MinStock:     decimal.Zero,
		Active:       true,
	}, nil
}

// Update changes the product's display name and sale price
func (p *Product) Update(name string, salePrice decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError(shared.CodeValidation, "product name is required")
	}
	if salePrice.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "sale price cannot be negative")
	}
	p.Name = name
	p.SalePrice = salePrice
	return nil
}

// SetMinStock sets the minimum-stock threshold
func (p *Product) SetMinStock(min decimal.Decimal) error {
	if min.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "minimum stock cannot be negative")
	}
	p.MinStock = min
	return nil
}

// Deactivate hides the product from sale without deleting its history
func (p *Product) Deactivate() {
	p.Active = false
}

// Activate returns the product to sale
func (p *Product) Activate() {
	p.Active = true
}

// Sellable returns true if the product can be sold right now
func (p *Product) Sellable() bool {
	return p.Active
}
