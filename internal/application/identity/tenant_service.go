package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/identity"
	"github.com/opsuite/backend/internal/domain/shared"
)

// TenantService handles tenant registration and settings
type TenantService struct {
	tenantRepo identity.TenantRepository
}

// NewTenantService creates a new TenantService
func NewTenantService(tenantRepo identity.TenantRepository) *TenantService {
	return &TenantService{tenantRepo: tenantRepo}
}

// Create registers a tenant. The code is derived from the name when absent
// and must be unique.
func (s *TenantService) Create(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	tenant, err := identity.NewTenant(req.Name, req.Code)
	if err != nil {
		return nil, err
	}
	existing, err := s.tenantRepo.FindByCode(ctx, tenant.Code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "tenant code already in use: "+tenant.Code)
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// Get returns a tenant by ID
func (s *TenantService) Get(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// SetExpiredLotPolicy switches the tenant's expired-lot policy. The change
// applies to the next finalization; in-flight transactions keep the policy
// they were loaded with.
func (s *TenantService) SetExpiredLotPolicy(ctx context.Context, id uuid.UUID, req UpdateExpiredLotPolicyRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tenant.SetExpiredLotPolicy(identity.ExpiredLotPolicy(req.Policy)); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}
