package identity

import (
	"context"

	"github.com/google/uuid"
)

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	// FindByID finds a tenant by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindByCode finds a tenant by its unique code
	FindByCode(ctx context.Context, code string) (*Tenant, error)

	// Save creates or updates a tenant
	Save(ctx context.Context, tenant *Tenant) error
}
