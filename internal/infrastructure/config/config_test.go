package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"OPSUITE_APP_NAME":                 os.Getenv("OPSUITE_APP_NAME"),
		"OPSUITE_APP_ENV":                  os.Getenv("OPSUITE_APP_ENV"),
		"OPSUITE_APP_PORT":                 os.Getenv("OPSUITE_APP_PORT"),
		"OPSUITE_DATABASE_HOST":            os.Getenv("OPSUITE_DATABASE_HOST"),
		"OPSUITE_DATABASE_PORT":            os.Getenv("OPSUITE_DATABASE_PORT"),
		"OPSUITE_DATABASE_USER":            os.Getenv("OPSUITE_DATABASE_USER"),
		"OPSUITE_DATABASE_PASSWORD":        os.Getenv("OPSUITE_DATABASE_PASSWORD"),
		"OPSUITE_DATABASE_DBNAME":          os.Getenv("OPSUITE_DATABASE_DBNAME"),
		"OPSUITE_DATABASE_SSLMODE":         os.Getenv("OPSUITE_DATABASE_SSLMODE"),
		"OPSUITE_REDIS_ENABLED":            os.Getenv("OPSUITE_REDIS_ENABLED"),
		"OPSUITE_CHECKOUT_IDEMPOTENCY_TTL": os.Getenv("OPSUITE_CHECKOUT_IDEMPOTENCY_TTL"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "opsuite-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "opsuite", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 24*time.Hour, cfg.Checkout.IdempotencyTTL)
		assert.Equal(t, 30, cfg.Checkout.ExpiryLookaheadDays)
		assert.False(t, cfg.Redis.Enabled)
	})

	t.Run("loads values from environment variables with OPSUITE prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("OPSUITE_APP_NAME", "test-app")
		os.Setenv("OPSUITE_APP_PORT", "9000")
		os.Setenv("OPSUITE_DATABASE_HOST", "testdb.local")
		os.Setenv("OPSUITE_DATABASE_PORT", "5433")
		os.Setenv("OPSUITE_DATABASE_USER", "testuser")
		os.Setenv("OPSUITE_DATABASE_PASSWORD", "testpass")
		os.Setenv("OPSUITE_REDIS_ENABLED", "true")
		os.Setenv("OPSUITE_CHECKOUT_IDEMPOTENCY_TTL", "1h")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, time.Hour, cfg.Checkout.IdempotencyTTL)
	})

	t.Run("production requires a database password and TLS", func(t *testing.T) {
		clearEnv()
		os.Setenv("OPSUITE_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")

		os.Setenv("OPSUITE_DATABASE_PASSWORD", "secret")
		_, err = Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")

		os.Setenv("OPSUITE_DATABASE_SSLMODE", "require")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.local",
		Port:     5432,
		User:     "app",
		Password: "p@ss/word",
		DBName:   "opsuite",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.local:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word", "password must be escaped")
}
