package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// LedgerEntryModel is the persistence model for LedgerEntry
type LedgerEntryModel struct {
	TenantScopedModel
	Type        string          `gorm:"size:16;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description string          `gorm:"size:255;not null"`
	Category    string          `gorm:"size:64"`
	EntryDate   time.Time       `gorm:"not null;index"`
	SaleID      *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the persistence model to a domain LedgerEntry
func (m *LedgerEntryModel) ToDomain() *finance.LedgerEntry {
	return &finance.LedgerEntry{
		TenantEntity: m.ToDomainTenantEntity(),
		Type:         finance.EntryType(m.Type),
		Amount:       m.Amount,
		Description:  m.Description,
		Category:     m.Category,
		EntryDate:    m.EntryDate,
		SaleID:       m.SaleID,
	}
}

// FromDomain populates the persistence model from a domain LedgerEntry
func (m *LedgerEntryModel) FromDomain(e *finance.LedgerEntry) {
	m.FromDomainTenantEntity(e.TenantEntity)
	m.Type = e.Type.String()
	m.Amount = e.Amount
	m.Description = e.Description
	m.Category = e.Category
	m.EntryDate = e.EntryDate
	m.SaleID = e.SaleID
}
