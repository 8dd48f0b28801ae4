package persistence

import (
	"fmt"
	"strings"
	"testing"

	"github.com/opsuite/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory SQLite database with the full schema.
// The database is named after the test so parallel tests stay isolated.
// Lock-dependent behavior is exercised against PostgreSQL in deployment.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.TenantModel{},
		&models.ProductModel{},
		&models.LotModel{},
		&models.MovementModel{},
		&models.SaleModel{},
		&models.SaleLineItemModel{},
		&models.OverrideRecordModel{},
		&models.LedgerEntryModel{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}
