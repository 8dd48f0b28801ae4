package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/identity"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTenantRepo struct {
	tenants map[uuid.UUID]identity.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: make(map[uuid.UUID]identity.Tenant)}
}

func (r *fakeTenantRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Tenant, error) {
	tenant, ok := r.tenants[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &tenant, nil
}

func (r *fakeTenantRepo) FindByCode(_ context.Context, code string) (*identity.Tenant, error) {
	for _, tenant := range r.tenants {
		if tenant.Code == code {
			t := tenant
			return &t, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeTenantRepo) Save(_ context.Context, tenant *identity.Tenant) error {
	r.tenants[tenant.ID] = *tenant
	return nil
}

func TestTenantService(t *testing.T) {
	t.Run("create derives the code and defaults the policy", func(t *testing.T) {
		service := NewTenantService(newFakeTenantRepo())

		created, err := service.Create(context.Background(), CreateTenantRequest{Name: "Pet Shop Centro"})
		require.NoError(t, err)
		assert.Equal(t, "pet-shop-centro", created.Code)
		assert.Equal(t, "JUSTIFY", created.ExpiredLotPolicy)
		assert.True(t, created.Active)
	})

	t.Run("duplicate code is rejected", func(t *testing.T) {
		service := NewTenantService(newFakeTenantRepo())
		_, err := service.Create(context.Background(), CreateTenantRequest{Name: "Pet Shop Centro"})
		require.NoError(t, err)

		_, err = service.Create(context.Background(), CreateTenantRequest{Name: "Outro", Code: "pet-shop-centro"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeAlreadyExists, domainErr.Code)
	})

	t.Run("policy switch", func(t *testing.T) {
		service := NewTenantService(newFakeTenantRepo())
		created, err := service.Create(context.Background(), CreateTenantRequest{Name: "Clínica Vet"})
		require.NoError(t, err)

		updated, err := service.SetExpiredLotPolicy(context.Background(), created.ID, UpdateExpiredLotPolicyRequest{Policy: "BLOCK"})
		require.NoError(t, err)
		assert.Equal(t, "BLOCK", updated.ExpiredLotPolicy)

		_, err = service.SetExpiredLotPolicy(context.Background(), created.ID, UpdateExpiredLotPolicyRequest{Policy: "LENIENT"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeValidation, domainErr.Code)
	})
}
