package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/inventory"
	"github.com/opsuite/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Lots are read in consumption order: soonest expiration first, lots that
// never expire last, creation time and code as tie-breakers. Keeping the SQL
// order aligned with SortLotsForConsumption means locks are acquired in the
// same sequence on every code path.
const lotConsumptionOrder = "expires_at ASC NULLS LAST, created_at ASC, code ASC"

// sqliteLotConsumptionOrder works around SQLite's lack of NULLS LAST.
const sqliteLotConsumptionOrder = "expires_at IS NULL ASC, expires_at ASC, created_at ASC, code ASC"

// GormLotRepository implements LotRepository using GORM
type GormLotRepository struct {
	db *gorm.DB
}

// NewGormLotRepository creates a new GormLotRepository
func NewGormLotRepository(db *gorm.DB) *GormLotRepository {
	return &GormLotRepository{db: db}
}

// FindByIDForTenant finds a lot by ID within a tenant
func (r *GormLotRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Lot, error) {
	var model models.LotModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByProduct finds all lots of a product in consumption order
func (r *GormLotRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]inventory.Lot, error) {
	var lotModels []models.LotModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Order(r.consumptionOrder()).
		Find(&lotModels).Error; err != nil {
		return nil, translateError(err)
	}
	return toDomainLots(lotModels), nil
}

// FindByProductForUpdate finds all lots of a product and locks their rows
// for the duration of the surrounding transaction
func (r *GormLotRepository) FindByProductForUpdate(ctx context.Context, tenantID, productID uuid.UUID) ([]inventory.Lot, error) {
	var lotModels []models.LotModel
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Order(r.consumptionOrder())
	// SQLite has no row locks; the single writer serializes instead.
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.Find(&lotModels).Error; err != nil {
		return nil, translateError(err)
	}
	return toDomainLots(lotModels), nil
}

// FindExpiringBefore finds lots whose expiration date falls on or before the
// given limit, ordered by expiration then creation time
func (r *GormLotRepository) FindExpiringBefore(ctx context.Context, tenantID uuid.UUID, limit time.Time) ([]inventory.Lot, error) {
	var lotModels []models.LotModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND expires_at IS NOT NULL AND expires_at <= ?", tenantID, limit).
		Order("expires_at ASC, created_at ASC").
		Find(&lotModels).Error; err != nil {
		return nil, translateError(err)
	}
	return toDomainLots(lotModels), nil
}

// Save creates or updates a lot
func (r *GormLotRepository) Save(ctx context.Context, lot *inventory.Lot) error {
	var model models.LotModel
	model.FromDomain(lot)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *GormLotRepository) consumptionOrder() string {
	if r.db.Dialector.Name() == "sqlite" {
		return sqliteLotConsumptionOrder
	}
	return lotConsumptionOrder
}

func toDomainLots(lotModels []models.LotModel) []inventory.Lot {
	lots := make([]inventory.Lot, len(lotModels))
	for i := range lotModels {
		lots[i] = *lotModels[i].ToDomain()
	}
	return lots
}
