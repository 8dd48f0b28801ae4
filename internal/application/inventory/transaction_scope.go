package inventory

import (
	"context"

	"github.com/opsuite/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to inventory repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the inventory repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// Lots returns the lot repository scoped to the current transaction
	Lots() inventory.LotRepository
	// Movements returns the movement repository scoped to the current transaction
	Movements() inventory.MovementRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	lotRepo      inventory.LotRepository
	movementRepo inventory.MovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(lotRepo inventory.LotRepository, movementRepo inventory.MovementRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{lotRepo: lotRepo, movementRepo: movementRepo}
}

// Execute runs the function without transaction semantics
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Lots returns the lot repository
func (s *NoOpTransactionScope) Lots() inventory.LotRepository { return s.lotRepo }

// Movements returns the movement repository
func (s *NoOpTransactionScope) Movements() inventory.MovementRepository { return s.movementRepo }
