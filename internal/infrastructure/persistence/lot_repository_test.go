package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/inventory"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestGormLotRepository_ConsumptionOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormLotRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	productID := uuid.New()

	// Saved deliberately out of order.
	noExpiry := inventory.NewLot(tenantID, productID, "NOEXP", nil)
	jan25 := inventory.NewLot(tenantID, productID, "JAN25", datePtr(2025, 1, 31))
	jun24 := inventory.NewLot(tenantID, productID, "JUN24", datePtr(2024, 6, 30))
	for _, lot := range []*inventory.Lot{noExpiry, jan25, jun24} {
		require.NoError(t, repo.Save(ctx, lot))
	}

	lots, err := repo.FindByProduct(ctx, tenantID, productID)
	require.NoError(t, err)
	require.Len(t, lots, 3)

	assert.Equal(t, "JUN24", lots[0].Code)
	assert.Equal(t, "JAN25", lots[1].Code)
	assert.Equal(t, "NOEXP", lots[2].Code, "lots without expiration sort last")
}

func TestGormLotRepository_FindByIDForTenant(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormLotRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	lot := inventory.NewLot(tenantID, uuid.New(), "L-001", datePtr(2025, 3, 1))
	require.NoError(t, repo.Save(ctx, lot))

	t.Run("finds own lot", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, tenantID, lot.ID)
		require.NoError(t, err)
		assert.Equal(t, "L-001", found.Code)
		require.NotNil(t, found.ExpiresAt)
		assert.True(t, found.ExpiresAt.Equal(*lot.ExpiresAt))
	})

	t.Run("does not cross tenants", func(t *testing.T) {
		_, err := repo.FindByIDForTenant(ctx, uuid.New(), lot.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormLotRepository_FindExpiringBefore(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormLotRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	productID := uuid.New()

	soon := inventory.NewLot(tenantID, productID, "SOON", datePtr(2024, 6, 14))
	later := inventory.NewLot(tenantID, productID, "LATER", datePtr(2024, 9, 1))
	never := inventory.NewLot(tenantID, productID, "NEVER", nil)
	for _, lot := range []*inventory.Lot{soon, later, never} {
		require.NoError(t, repo.Save(ctx, lot))
	}

	lots, err := repo.FindExpiringBefore(ctx, tenantID, time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, "SOON", lots[0].Code)
}
