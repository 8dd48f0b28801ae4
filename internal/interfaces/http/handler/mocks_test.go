package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	checkoutapp "github.com/opsuite/backend/internal/application/checkout"
	"github.com/opsuite/backend/internal/domain/catalog"
	"github.com/opsuite/backend/internal/domain/identity"
	"github.com/opsuite/backend/internal/domain/inventory"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockTenantRepository implements identity.TenantRepository for testing
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByCode(ctx context.Context, code string) (*identity.Tenant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDsForUpdate(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockLotRepository implements inventory.LotRepository for testing
type MockLotRepository struct {
	mock.Mock
}

func (m *MockLotRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Lot, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Lot), args.Error(1)
}

func (m *MockLotRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]inventory.Lot, error) {
	args := m.Called(ctx, tenantID, productID)
	return args.Get(0).([]inventory.Lot), args.Error(1)
}

func (m *MockLotRepository) FindByProductForUpdate(ctx context.Context, tenantID, productID uuid.UUID) ([]inventory.Lot, error) {
	args := m.Called(ctx, tenantID, productID)
	return args.Get(0).([]inventory.Lot), args.Error(1)
}

func (m *MockLotRepository) FindExpiringBefore(ctx context.Context, tenantID uuid.UUID, limit time.Time) ([]inventory.Lot, error) {
	args := m.Called(ctx, tenantID, limit)
	return args.Get(0).([]inventory.Lot), args.Error(1)
}

func (m *MockLotRepository) Save(ctx context.Context, lot *inventory.Lot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

// MockMovementRepository implements inventory.MovementRepository for testing
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) Append(ctx context.Context, movement *inventory.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) AppendAll(ctx context.Context, movements []*inventory.Movement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

func (m *MockMovementRepository) SumByLot(ctx context.Context, tenantID, lotID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, lotID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockMovementRepository) SumByLots(ctx context.Context, tenantID uuid.UUID, lotIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, lotIDs)
	return args.Get(0).(map[uuid.UUID]decimal.Decimal), args.Error(1)
}

func (m *MockMovementRepository) SumByProduct(ctx context.Context, tenantID, productID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, productID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockMovementRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Movement, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]inventory.Movement), args.Get(1).(int64), args.Error(2)
}

func (m *MockMovementRepository) ListByProduct(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) ([]inventory.Movement, int64, error) {
	args := m.Called(ctx, tenantID, productID, filter)
	return args.Get(0).([]inventory.Movement), args.Get(1).(int64), args.Error(2)
}

// unusedCheckoutScope fails loudly if a test reaches the transactional phase
type unusedCheckoutScope struct{}

func (s *unusedCheckoutScope) Execute(_ context.Context, _ func(repos checkoutapp.TransactionalRepositories) error) error {
	return shared.NewDomainError(shared.CodeInternal, "transaction scope must not be reached in this test")
}
