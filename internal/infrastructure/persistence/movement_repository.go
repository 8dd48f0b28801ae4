package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/inventory"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/opsuite/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// signedQuantity folds the direction into the quantity so balances are a
// plain SUM over the ledger.
const signedQuantity = "CASE WHEN direction = 'IN' THEN quantity ELSE -quantity END"

// GormMovementRepository implements MovementRepository using GORM. The
// movements table is append-only; this repository never updates or deletes.
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Append writes one movement
func (r *GormMovementRepository) Append(ctx context.Context, movement *inventory.Movement) error {
	var model models.MovementModel
	model.FromDomain(movement)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// AppendAll writes a batch of movements
func (r *GormMovementRepository) AppendAll(ctx context.Context, movements []*inventory.Movement) error {
	if len(movements) == 0 {
		return nil
	}
	movementModels := make([]models.MovementModel, len(movements))
	for i, movement := range movements {
		movementModels[i].FromDomain(movement)
	}
	if err := r.db.WithContext(ctx).Create(&movementModels).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// SumByLot derives a lot's balance from the ledger
func (r *GormMovementRepository) SumByLot(ctx context.Context, tenantID, lotID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Balance decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.MovementModel{}).
		Select("COALESCE(SUM("+signedQuantity+"), 0) AS balance").
		Where("tenant_id = ? AND lot_id = ?", tenantID, lotID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, translateError(err)
	}
	return result.Balance, nil
}

// SumByLots derives balances for many lots in one query. Lots with no
// movements are absent from the result map.
func (r *GormMovementRepository) SumByLots(ctx context.Context, tenantID uuid.UUID, lotIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	balances := make(map[uuid.UUID]decimal.Decimal, len(lotIDs))
	if len(lotIDs) == 0 {
		return balances, nil
	}

	var rows []struct {
		LotID   uuid.UUID
		Balance decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.MovementModel{}).
		Select("lot_id, COALESCE(SUM("+signedQuantity+"), 0) AS balance").
		Where("tenant_id = ? AND lot_id IN ?", tenantID, lotIDs).
		Group("lot_id").
		Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	for _, row := range rows {
		balances[row.LotID] = row.Balance
	}
	return balances, nil
}

// SumByProduct derives a product's total balance across all its lots
func (r *GormMovementRepository) SumByProduct(ctx context.Context, tenantID, productID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Balance decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.MovementModel{}).
		Select("COALESCE(SUM("+signedQuantity+"), 0) AS balance").
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, translateError(err)
	}
	return result.Balance, nil
}

// ListForTenant lists movements, newest first
func (r *GormMovementRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Movement, int64, error) {
	return r.list(ctx, filter, "tenant_id = ?", tenantID)
}

// ListByProduct lists a product's movements, newest first
func (r *GormMovementRepository) ListByProduct(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) ([]inventory.Movement, int64, error) {
	return r.list(ctx, filter, "tenant_id = ? AND product_id = ?", tenantID, productID)
}

func (r *GormMovementRepository) list(ctx context.Context, filter shared.Filter, condition string, args ...interface{}) ([]inventory.Movement, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.MovementModel{}).
		Where(condition, args...).
		Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var movementModels []models.MovementModel
	query := r.db.WithContext(ctx).Model(&models.MovementModel{}).
		Where(condition, args...)
	if err := applyFilter(query, filter, MovementSortFields, "occurred_at").
		Find(&movementModels).Error; err != nil {
		return nil, 0, translateError(err)
	}

	movements := make([]inventory.Movement, len(movementModels))
	for i := range movementModels {
		movements[i] = *movementModels[i].ToDomain()
	}
	return movements, total, nil
}
