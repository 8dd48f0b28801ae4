package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/sales"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/opsuite/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Save persists a completed sale together with its line items
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	var model models.SaleModel
	model.FromDomain(sale)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByIDForTenant finds a sale with its items within a tenant
func (r *GormSaleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// ListForTenant lists sales for a tenant, newest first
func (r *GormSaleRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.Sale, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.SaleModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var saleModels []models.SaleModel
	query := r.db.WithContext(ctx).Model(&models.SaleModel{}).
		Preload("Items").
		Where("tenant_id = ?", tenantID)
	if err := applyFilter(query, filter, SaleSortFields, "occurred_at").
		Find(&saleModels).Error; err != nil {
		return nil, 0, translateError(err)
	}

	result := make([]sales.Sale, len(saleModels))
	for i := range saleModels {
		result[i] = *saleModels[i].ToDomain()
	}
	return result, total, nil
}
