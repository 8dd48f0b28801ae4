package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/identity"
	"github.com/opsuite/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTenantRepository implements TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by its ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByCode finds a tenant by its unique code
func (r *GormTenantRepository) FindByCode(ctx context.Context, code string) (*identity.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "code = ?", code).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates a tenant
func (r *GormTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	var model models.TenantModel
	model.FromDomain(tenant)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return translateError(err)
	}
	return nil
}
