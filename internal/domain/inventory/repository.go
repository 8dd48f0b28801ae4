package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LotRepository defines the interface for lot persistence
type LotRepository interface {
	// FindByIDForTenant finds a lot by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Lot, error)

	// FindByProduct finds all lots of a product
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]Lot, error)

	// FindByProductForUpdate finds all lots of a product and locks their rows
	// for the duration of the surrounding transaction. Rows are locked in
	// consumption order so concurrent finalizations serialize cleanly.
	FindByProductForUpdate(ctx context.Context, tenantID, productID uuid.UUID) ([]Lot, error)

	// FindExpiringBefore finds lots whose expiration date falls on or before
	// the given limit, ordered by expiration then creation time.
	FindExpiringBefore(ctx context.Context, tenantID uuid.UUID, limit time.Time) ([]Lot, error)

	// Save creates or updates a lot
	Save(ctx context.Context, lot *Lot) error
}

// MovementRepository is the append-only ledger store. Movements are never
// updated or deleted; the interface deliberately offers no way to do so.
type MovementRepository interface {
	// Append writes one movement
	Append(ctx context.Context, movement *Movement) error

	// AppendAll writes a batch of movements
	AppendAll(ctx context.Context, movements []*Movement) error

	// SumByLot derives a lot's balance (Σ in − Σ out) from the ledger
	SumByLot(ctx context.Context, tenantID, lotID uuid.UUID) (decimal.Decimal, error)

	// SumByLots derives balances for many lots in one query
	SumByLots(ctx context.Context, tenantID uuid.UUID, lotIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)

	// SumByProduct derives a product's total balance across all its lots
	SumByProduct(ctx context.Context, tenantID, productID uuid.UUID) (decimal.Decimal, error)

	// ListForTenant lists movements, newest first
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Movement, int64, error)

	// ListByProduct lists a product's movements, newest first
	ListByProduct(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) ([]Movement, int64, error)
}
