package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/shared"
)

// SaleRepository defines the interface for sale persistence. Only completed
// sales are ever saved; there is deliberately no update or delete.
type SaleRepository interface {
	// Save persists a completed sale together with its line items
	Save(ctx context.Context, sale *Sale) error

	// FindByIDForTenant finds a sale with its items within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)

	// ListForTenant lists sales for a tenant, newest first
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Sale, int64, error)
}

// OverrideRecordRepository is the write-once audit log for expired-lot
// overrides.
type OverrideRecordRepository interface {
	// Append writes one override record
	Append(ctx context.Context, record *OverrideRecord) error

	// ListForTenant lists override records, newest first
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]OverrideRecord, int64, error)

	// CountForTenant counts override records for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
