package models

import (
	"github.com/opsuite/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for Product
type ProductModel struct {
	TenantScopedModel
	Name        string          `gorm:"size:255;not null"`
	Kind        string          `gorm:"size:32;not null"`
	SalePrice   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TracksStock bool            `gorm:"not null;default:false"`
	MinStock    decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`
	Active      bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		TenantEntity: m.ToDomainTenantEntity(),
		Name:         m.Name,
		Kind:         catalog.ProductKind(m.Kind),
		SalePrice:    m.SalePrice,
		TracksStock:  m.TracksStock,
		MinStock:     m.MinStock,
		Active:       m.Active,
	}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainTenantEntity(p.TenantEntity)
	m.Name = p.Name
	m.Kind = p.Kind.String()
	m.SalePrice = p.SalePrice
	m.TracksStock = p.TracksStock
	m.MinStock = p.MinStock
	m.Active = p.Active
}
