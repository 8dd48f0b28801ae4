package persistence

import (
	"context"

	appinv "github.com/opsuite/backend/internal/application/inventory"
	"github.com/opsuite/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormInventoryTransactionScope implements the inventory TransactionScope
// using GORM transactions. Stock receipts create the lot and append the
// movement atomically.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryRepositories{tx: tx})
	})
	return translateError(err)
}

// gormInventoryRepositories provides the repositories scoped to one
// transaction.
type gormInventoryRepositories struct {
	tx *gorm.DB
}

// Lots returns the lot repository scoped to the transaction
func (r *gormInventoryRepositories) Lots() inventory.LotRepository {
	return NewGormLotRepository(r.tx)
}

// Movements returns the movement ledger scoped to the transaction
func (r *gormInventoryRepositories) Movements() inventory.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

// Ensure GormInventoryTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormInventoryTransactionScope)(nil)

// Ensure gormInventoryRepositories implements TransactionalRepositories
var _ appinv.TransactionalRepositories = (*gormInventoryRepositories)(nil)
