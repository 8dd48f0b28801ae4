package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/finance"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/opsuite/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedgerEntryRepository implements LedgerEntryRepository using GORM
type GormLedgerEntryRepository struct {
	db *gorm.DB
}

// NewGormLedgerEntryRepository creates a new GormLedgerEntryRepository
func NewGormLedgerEntryRepository(db *gorm.DB) *GormLedgerEntryRepository {
	return &GormLedgerEntryRepository{db: db}
}

// Append writes one ledger entry
func (r *GormLedgerEntryRepository) Append(ctx context.Context, entry *finance.LedgerEntry) error {
	var model models.LedgerEntryModel
	model.FromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByIDForTenant finds an entry by ID within a tenant
func (r *GormLedgerEntryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.LedgerEntry, error) {
	var model models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindBySale finds the entry linked to a sale, if any
func (r *GormLedgerEntryRepository) FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) (*finance.LedgerEntry, error) {
	var model models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND sale_id = ?", tenantID, saleID).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// ListForTenant lists entries, newest first
func (r *GormLedgerEntryRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.LedgerEntry, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.LedgerEntryModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var entryModels []models.LedgerEntryModel
	query := r.db.WithContext(ctx).Model(&models.LedgerEntryModel{}).
		Where("tenant_id = ?", tenantID)
	if err := applyFilter(query, filter, LedgerEntrySortFields, "entry_date").
		Find(&entryModels).Error; err != nil {
		return nil, 0, translateError(err)
	}

	entries := make([]finance.LedgerEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = *entryModels[i].ToDomain()
	}
	return entries, total, nil
}

// SumByTypeBetween totals entries of one type with an entry date in [from, to]
func (r *GormLedgerEntryRepository) SumByTypeBetween(ctx context.Context, tenantID uuid.UUID, entryType finance.EntryType, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.LedgerEntryModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("tenant_id = ? AND type = ? AND entry_date >= ? AND entry_date <= ?",
			tenantID, entryType.String(), from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, translateError(err)
	}
	return result.Total, nil
}
