package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/application/checkout"
	"github.com/opsuite/backend/internal/domain/inventory"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCheckoutTransactionScope(t *testing.T) {
	db := newTestDB(t)
	scope := NewGormCheckoutTransactionScope(db)
	ctx := context.Background()

	tenantID := uuid.New()
	productID := uuid.New()
	asOf := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("commits all writes together", func(t *testing.T) {
		sale := completedSale(t, tenantID, asOf)
		err := scope.Execute(ctx, func(repos checkout.TransactionalRepositories) error {
			if err := repos.Sales().Save(ctx, sale); err != nil {
				return err
			}
			movement, err := inventory.NewMovement(tenantID, productID, nil, inventory.MovementOut, decimal.NewFromInt(2), asOf, "")
			if err != nil {
				return err
			}
			return repos.Movements().Append(ctx, movement)
		})
		require.NoError(t, err)

		found, err := NewGormSaleRepository(db).FindByIDForTenant(ctx, tenantID, sale.ID)
		require.NoError(t, err)
		assert.Equal(t, sale.ID, found.ID)

		balance, err := NewGormMovementRepository(db).SumByProduct(ctx, tenantID, productID)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(-2)))
	})

	t.Run("rolls back every write when fn fails", func(t *testing.T) {
		sale := completedSale(t, tenantID, asOf)
		err := scope.Execute(ctx, func(repos checkout.TransactionalRepositories) error {
			if err := repos.Sales().Save(ctx, sale); err != nil {
				return err
			}
			return shared.NewDomainError(shared.CodeInvalidState, "forced failure")
		})
		require.Error(t, err)

		_, err = NewGormSaleRepository(db).FindByIDForTenant(ctx, tenantID, sale.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
