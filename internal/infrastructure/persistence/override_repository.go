package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/sales"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/opsuite/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOverrideRecordRepository implements OverrideRecordRepository using
// GORM. Records are append-only.
type GormOverrideRecordRepository struct {
	db *gorm.DB
}

// NewGormOverrideRecordRepository creates a new GormOverrideRecordRepository
func NewGormOverrideRecordRepository(db *gorm.DB) *GormOverrideRecordRepository {
	return &GormOverrideRecordRepository{db: db}
}

// Append writes one override record
func (r *GormOverrideRecordRepository) Append(ctx context.Context, record *sales.OverrideRecord) error {
	var model models.OverrideRecordModel
	model.FromDomain(record)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// ListForTenant lists override records, newest first
func (r *GormOverrideRecordRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.OverrideRecord, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.OverrideRecordModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var recordModels []models.OverrideRecordModel
	query := r.db.WithContext(ctx).Model(&models.OverrideRecordModel{}).
		Where("tenant_id = ?", tenantID)
	if err := applyFilter(query, filter, OverrideRecordSortFields, "created_at").
		Find(&recordModels).Error; err != nil {
		return nil, 0, translateError(err)
	}

	records := make([]sales.OverrideRecord, len(recordModels))
	for i := range recordModels {
		records[i] = *recordModels[i].ToDomain()
	}
	return records, total, nil
}

// CountForTenant counts override records for a tenant
func (r *GormOverrideRecordRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.OverrideRecordModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}
