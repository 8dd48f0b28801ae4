package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LedgerEntryRepository defines the interface for financial entry persistence
type LedgerEntryRepository interface {
	// Append writes one ledger entry
	Append(ctx context.Context, entry *LedgerEntry) error

	// FindByIDForTenant finds an entry by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*LedgerEntry, error)

	// FindBySale finds the entry linked to a sale, if any
	FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) (*LedgerEntry, error)

	// ListForTenant lists entries, newest first
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]LedgerEntry, int64, error)

	// SumByTypeBetween totals entries of one type with an entry date in [from, to]
	SumByTypeBetween(ctx context.Context, tenantID uuid.UUID, entryType EntryType, from, to time.Time) (decimal.Decimal, error)
}
