package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByIDForTenant finds a product by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)

	// FindByIDsForTenant finds multiple products by their IDs within a tenant
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Product, error)

	// FindByIDsForUpdate finds products by ID and locks their rows for the
	// duration of the surrounding transaction. IDs are locked in ascending
	// order so concurrent finalizations acquire locks in the same sequence.
	FindByIDsForUpdate(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Product, error)

	// FindAllForTenant lists products for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// DeleteForTenant removes a product that has no movement history
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
