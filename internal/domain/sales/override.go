package sales

import (
	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/shared"
)

// OverrideCategory classifies an override record for the audit screen.
// Finalizations only ever write CategoryImmediate records (a sale proceeded
// over an already-expired lot); the warning categories exist for manual
// releases recorded outside of a sale.
type OverrideCategory string

const (
	// CategoryImmediate means an already-expired lot was released
	CategoryImmediate OverrideCategory = "IMMEDIATE"
	// CategoryWarning7Days means a lot expiring within 7 days was released
	CategoryWarning7Days OverrideCategory = "WARNING_7_DAYS"
	// CategoryWarning15Days means a lot expiring within 15 days was released
	CategoryWarning15Days OverrideCategory = "WARNING_15_DAYS"
	// CategoryNotice is a generic attention marker
	CategoryNotice OverrideCategory = "NOTICE"
)

// IsValid returns true if the category is a known category
func (c OverrideCategory) IsValid() bool {
	switch c {
	case CategoryImmediate, CategoryWarning7Days, CategoryWarning15Days, CategoryNotice:
		return true
	}
	return false
}

// String returns the string representation of OverrideCategory
func (c OverrideCategory) String() string {
	return string(c)
}

// OverrideRecord is the durable audit trail of a sale that proceeded
// despite touching an expired lot. Records are write-once.
type OverrideRecord struct {
	shared.TenantEntity
	UserID        uuid.UUID
	SaleID        *uuid.UUID
	ProductID     *uuid.UUID
	LotID         *uuid.UUID
	Category      OverrideCategory
	Justification string
}

// NewOverrideRecord creates an override audit record
func NewOverrideRecord(tenantID, userID uuid.UUID, saleID, productID, lotID *uuid.UUID, category OverrideCategory, justification string) (*OverrideRecord, error) {
	if !category.IsValid() {
		return nil, shared.NewDomainError(shared.CodeValidation, "unknown override category: "+string(category))
	}
	return &OverrideRecord{
		TenantEntity:  shared.NewTenantEntity(tenantID),
		UserID:        userID,
		SaleID:        saleID,
		ProductID:     productID,
		LotID:         lotID,
		Category:      category,
		Justification: justification,
	}, nil
}
