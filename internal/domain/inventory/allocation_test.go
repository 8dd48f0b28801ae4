package inventory

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func testLot(productID uuid.UUID, code string, expiresAt *time.Time, createdAt time.Time) Lot {
	lot := *NewLot(uuid.New(), productID, code, expiresAt)
	lot.CreatedAt = createdAt
	return lot
}

func TestSortLotsForConsumption(t *testing.T) {
	productID := uuid.New()
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("expiry ascending with never-expiring lots last", func(t *testing.T) {
		stocks := []LotStock{
			{Lot: testLot(productID, "A", datePtr(2025, 1, 1), base), Balance: decimal.NewFromInt(5)},
			{Lot: testLot(productID, "B", nil, base), Balance: decimal.NewFromInt(5)},
			{Lot: testLot(productID, "C", datePtr(2024, 6, 1), base), Balance: decimal.NewFromInt(5)},
		}
		SortLotsForConsumption(stocks)

		assert.Equal(t, "C", stocks[0].Lot.Code)
		assert.Equal(t, "A", stocks[1].Lot.Code)
		assert.Equal(t, "B", stocks[2].Lot.Code)
	})

	t.Run("same expiry breaks ties by creation time then code", func(t *testing.T) {
		expiry := datePtr(2024, 12, 31)
		stocks := []LotStock{
			{Lot: testLot(productID, "Z", expiry, base.Add(2*time.Hour))},
			{Lot: testLot(productID, "B", expiry, base)},
			{Lot: testLot(productID, "A", expiry, base)},
		}
		SortLotsForConsumption(stocks)

		assert.Equal(t, "A", stocks[0].Lot.Code)
		assert.Equal(t, "B", stocks[1].Lot.Code)
		assert.Equal(t, "Z", stocks[2].Lot.Code)
	})
}

func TestPlanConsumption(t *testing.T) {
	productID := uuid.New()
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("consumes earliest expiry first, never-expiring last", func(t *testing.T) {
		stocks := []LotStock{
			{Lot: testLot(productID, "JAN25", datePtr(2025, 1, 1), base), Balance: decimal.NewFromInt(5)},
			{Lot: testLot(productID, "NOEXP", nil, base), Balance: decimal.NewFromInt(5)},
			{Lot: testLot(productID, "JUN24", datePtr(2024, 6, 1), base), Balance: decimal.NewFromInt(5)},
		}

		plan, err := PlanConsumption(productID, stocks, decimal.NewFromInt(12))
		require.NoError(t, err)
		require.Len(t, plan.Entries, 3)

		assert.Equal(t, "JUN24", plan.Entries[0].Lot.Code)
		assert.True(t, plan.Entries[0].Quantity.Equal(decimal.NewFromInt(5)))
		assert.Equal(t, "JAN25", plan.Entries[1].Lot.Code)
		assert.True(t, plan.Entries[1].Quantity.Equal(decimal.NewFromInt(5)))
		assert.Equal(t, "NOEXP", plan.Entries[2].Lot.Code)
		assert.True(t, plan.Entries[2].Quantity.Equal(decimal.NewFromInt(2)))

		assert.True(t, plan.TotalPlanned().Equal(decimal.NewFromInt(12)))
	})

	t.Run("stops at zero remainder without touching later lots", func(t *testing.T) {
		stocks := []LotStock{
			{Lot: testLot(productID, "L1", datePtr(2024, 6, 1), base), Balance: decimal.NewFromInt(10)},
			{Lot: testLot(productID, "L2", datePtr(2024, 7, 1), base), Balance: decimal.NewFromInt(10)},
		}

		plan, err := PlanConsumption(productID, stocks, decimal.NewFromInt(4))
		require.NoError(t, err)
		require.Len(t, plan.Entries, 1)
		assert.Equal(t, "L1", plan.Entries[0].Lot.Code)
		assert.True(t, plan.Entries[0].Quantity.Equal(decimal.NewFromInt(4)))
	})

	t.Run("skips lots with zero balance", func(t *testing.T) {
		stocks := []LotStock{
			{Lot: testLot(productID, "EMPTY", datePtr(2024, 6, 1), base), Balance: decimal.Zero},
			{Lot: testLot(productID, "FULL", datePtr(2024, 7, 1), base), Balance: decimal.NewFromInt(3)},
		}

		plan, err := PlanConsumption(productID, stocks, decimal.NewFromInt(3))
		require.NoError(t, err)
		require.Len(t, plan.Entries, 1)
		assert.Equal(t, "FULL", plan.Entries[0].Lot.Code)
	})

	t.Run("reports insufficient stock with available amount", func(t *testing.T) {
		stocks := []LotStock{
			{Lot: testLot(productID, "L1", datePtr(2024, 6, 1), base), Balance: decimal.NewFromInt(5)},
			{Lot: testLot(productID, "L2", nil, base), Balance: decimal.NewFromInt(2)},
		}

		plan, err := PlanConsumption(productID, stocks, decimal.NewFromInt(10))
		assert.Nil(t, plan)

		var insufficientErr *InsufficientStockError
		require.True(t, errors.As(err, &insufficientErr))
		assert.Equal(t, productID, insufficientErr.ProductID)
		assert.True(t, insufficientErr.Available.Equal(decimal.NewFromInt(7)))
		assert.True(t, insufficientErr.Shortfall().Equal(decimal.NewFromInt(3)))
	})

	t.Run("rejects non-positive request", func(t *testing.T) {
		_, err := PlanConsumption(productID, nil, decimal.Zero)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeValidation, domainErr.Code)
	})
}
