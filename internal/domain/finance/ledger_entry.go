package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EntryType represents the direction of a financial ledger entry
type EntryType string

const (
	// EntryRevenue is money coming in (sales, service income)
	EntryRevenue EntryType = "REVENUE"
	// EntryExpense is money going out (purchases, bills)
	EntryExpense EntryType = "EXPENSE"
)

// IsValid returns true if the entry type is a known type
func (t EntryType) IsValid() bool {
	switch t {
	case EntryRevenue, EntryExpense:
		return true
	}
	return false
}

// String returns the string representation of EntryType
func (t EntryType) String() string {
	return string(t)
}

// LedgerEntry is one financial record. A completed sale produces exactly
// one revenue entry, written in the same transaction as the sale itself;
// expense entries are recorded manually.
type LedgerEntry struct {
	shared.TenantEntity
	Type        EntryType
	Amount      decimal.Decimal
	Description string
	Category    string
	EntryDate   time.Time // date-level granularity
	SaleID      *uuid.UUID
}

// NewLedgerEntry creates a financial ledger entry
func NewLedgerEntry(tenantID uuid.UUID, entryType EntryType, amount decimal.Decimal, description, category string, entryDate time.Time, saleID *uuid.UUID) (*LedgerEntry, error) {
	if !entryType.IsValid() {
		return nil, shared.NewDomainError(shared.CodeValidation, "unknown entry type: "+string(entryType))
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeValidation, "entry amount must be positive")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "entry description is required")
	}
	if entryDate.IsZero() {
		entryDate = time.Now()
	}
	return &LedgerEntry{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Type:         entryType,
		Amount:       amount,
		Description:  description,
		Category:     category,
		EntryDate:    entryDate,
		SaleID:       saleID,
	}, nil
}
