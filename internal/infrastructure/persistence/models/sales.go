package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for Sale
type SaleModel struct {
	TenantScopedModel
	OperatorID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	OccurredAt    time.Time           `gorm:"not null;index"`
	Total         decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	PaymentMethod string              `gorm:"size:16;not null"`
	Note          string              `gorm:"size:500"`
	Justification string              `gorm:"size:500"`
	Status        string              `gorm:"size:16;not null"`
	Items         []SaleLineItemModel `gorm:"foreignKey:SaleID;references:ID"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// SaleLineItemModel is the persistence model for SaleLineItem
type SaleLineItemModel struct {
	BaseModel
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (SaleLineItemModel) TableName() string {
	return "sale_line_items"
}

// ToDomain converts the persistence model to a domain Sale
func (m *SaleModel) ToDomain() *sales.Sale {
	sale := &sales.Sale{
		TenantEntity:  m.ToDomainTenantEntity(),
		OperatorID:    m.OperatorID,
		OccurredAt:    m.OccurredAt,
		Total:         m.Total,
		PaymentMethod: sales.PaymentMethod(m.PaymentMethod),
		Note:          m.Note,
		Justification: m.Justification,
		Status:        sales.SaleStatus(m.Status),
		Items:         make([]sales.SaleLineItem, len(m.Items)),
	}
	for i := range m.Items {
		item := &m.Items[i]
		sale.Items[i] = sales.SaleLineItem{
			BaseEntity: item.BaseModel.ToDomain(),
			SaleID:     item.SaleID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		}
	}
	return sale
}

// FromDomain populates the persistence model from a domain Sale
func (m *SaleModel) FromDomain(s *sales.Sale) {
	m.FromDomainTenantEntity(s.TenantEntity)
	m.OperatorID = s.OperatorID
	m.OccurredAt = s.OccurredAt
	m.Total = s.Total
	m.PaymentMethod = s.PaymentMethod.String()
	m.Note = s.Note
	m.Justification = s.Justification
	m.Status = s.Status.String()
	m.Items = make([]SaleLineItemModel, len(s.Items))
	for i := range s.Items {
		item := &s.Items[i]
		model := SaleLineItemModel{
			SaleID:    item.SaleID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
		model.FromDomainBaseEntity(item.BaseEntity)
		m.Items[i] = model
	}
}

// OverrideRecordModel is the persistence model for OverrideRecord.
// Rows are append-only.
type OverrideRecordModel struct {
	TenantScopedModel
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	SaleID        *uuid.UUID `gorm:"type:uuid;index"`
	ProductID     *uuid.UUID `gorm:"type:uuid"`
	LotID         *uuid.UUID `gorm:"type:uuid"`
	Category      string     `gorm:"size:32;not null;index"`
	Justification string     `gorm:"size:500"`
}

// TableName returns the table name for GORM
func (OverrideRecordModel) TableName() string {
	return "override_records"
}

// ToDomain converts the persistence model to a domain OverrideRecord
func (m *OverrideRecordModel) ToDomain() *sales.OverrideRecord {
	return &sales.OverrideRecord{
		TenantEntity:  m.ToDomainTenantEntity(),
		UserID:        m.UserID,
		SaleID:        m.SaleID,
		ProductID:     m.ProductID,
		LotID:         m.LotID,
		Category:      sales.OverrideCategory(m.Category),
		Justification: m.Justification,
	}
}

// FromDomain populates the persistence model from a domain OverrideRecord
func (m *OverrideRecordModel) FromDomain(r *sales.OverrideRecord) {
	m.FromDomainTenantEntity(r.TenantEntity)
	m.UserID = r.UserID
	m.SaleID = r.SaleID
	m.ProductID = r.ProductID
	m.LotID = r.LotID
	m.Category = r.Category.String()
	m.Justification = r.Justification
}
