package persistence

import (
	"context"

	"github.com/opsuite/backend/internal/application/checkout"
	"github.com/opsuite/backend/internal/domain/catalog"
	"github.com/opsuite/backend/internal/domain/finance"
	"github.com/opsuite/backend/internal/domain/inventory"
	"github.com/opsuite/backend/internal/domain/sales"
	"gorm.io/gorm"
)

// GormCheckoutTransactionScope implements the checkout TransactionScope
// using GORM transactions. Every finalization runs inside one database
// transaction so the sale, its movements, the override records and the
// ledger entry commit or roll back together.
type GormCheckoutTransactionScope struct {
	db *gorm.DB
}

// NewGormCheckoutTransactionScope creates a new GormCheckoutTransactionScope
func NewGormCheckoutTransactionScope(db *gorm.DB) *GormCheckoutTransactionScope {
	return &GormCheckoutTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormCheckoutTransactionScope) Execute(ctx context.Context, fn func(repos checkout.TransactionalRepositories) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCheckoutRepositories{tx: tx})
	})
	return translateError(err)
}

// gormCheckoutRepositories provides the repositories scoped to one
// transaction.
type gormCheckoutRepositories struct {
	tx *gorm.DB
}

// Products returns the product repository scoped to the transaction
func (r *gormCheckoutRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// Lots returns the lot repository scoped to the transaction
func (r *gormCheckoutRepositories) Lots() inventory.LotRepository {
	return NewGormLotRepository(r.tx)
}

// Movements returns the movement ledger scoped to the transaction
func (r *gormCheckoutRepositories) Movements() inventory.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

// Sales returns the sale repository scoped to the transaction
func (r *gormCheckoutRepositories) Sales() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// Overrides returns the override audit log scoped to the transaction
func (r *gormCheckoutRepositories) Overrides() sales.OverrideRecordRepository {
	return NewGormOverrideRecordRepository(r.tx)
}

// Ledger returns the financial ledger scoped to the transaction
func (r *gormCheckoutRepositories) Ledger() finance.LedgerEntryRepository {
	return NewGormLedgerEntryRepository(r.tx)
}

// Ensure GormCheckoutTransactionScope implements TransactionScope
var _ checkout.TransactionScope = (*GormCheckoutTransactionScope)(nil)

// Ensure gormCheckoutRepositories implements TransactionalRepositories
var _ checkout.TransactionalRepositories = (*gormCheckoutRepositories)(nil)
