package checkout

import (
	"context"

	"github.com/opsuite/backend/internal/domain/catalog"
	"github.com/opsuite/backend/internal/domain/finance"
	"github.com/opsuite/backend/internal/domain/inventory"
	"github.com/opsuite/backend/internal/domain/sales"
)

// TransactionScope provides transactional access to everything a sale
// finalization touches. All repository operations performed inside Execute
// share one database transaction and commit or roll back atomically: a
// failed finalization leaves zero movements, zero sales and zero override
// records behind.
type TransactionScope interface {
	// Execute runs fn within a database transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories scoped to
// the current transaction. The checkout orchestrator is the only writer of
// movements, sales, override records and sale-linked ledger entries, and
// always goes through this interface.
type TransactionalRepositories interface {
	// Products returns the product repository scoped to the transaction
	Products() catalog.ProductRepository
	// Lots returns the lot repository scoped to the transaction
	Lots() inventory.LotRepository
	// Movements returns the movement ledger scoped to the transaction
	Movements() inventory.MovementRepository
	// Sales returns the sale repository scoped to the transaction
	Sales() sales.SaleRepository
	// Overrides returns the override audit log scoped to the transaction
	Overrides() sales.OverrideRecordRepository
	// Ledger returns the financial ledger scoped to the transaction
	Ledger() finance.LedgerEntryRepository
}
