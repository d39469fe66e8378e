package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearDashEnv unsets every DASH_ variable for the duration of the test
func clearDashEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "DASH_") {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearDashEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "dashboard-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "dashboard", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "dash:", cfg.Redis.Prefix)
		assert.Equal(t, 30*time.Second, cfg.OrderStatus.StaleTime)
		assert.Equal(t, 3, cfg.OrderStatus.MaxRetries)
		assert.Equal(t, 5, cfg.Dashboard.RecentOrdersLimit)
		assert.Equal(t, 20, cfg.Dashboard.DefaultPageSize)
		assert.Equal(t, 15*time.Minute, cfg.Storage.PresignExpiration)
	})

	t.Run("loads values from environment variables with DASH prefix", func(t *testing.T) {
		clearDashEnv(t)
		t.Setenv("DASH_APP_NAME", "test-app")
		t.Setenv("DASH_APP_PORT", "9000")
		t.Setenv("DASH_DATABASE_HOST", "testdb.local")
		t.Setenv("DASH_DATABASE_PORT", "5433")
		t.Setenv("DASH_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("DASH_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("DASH_ORDER_STATUS_API_URL", "https://status.example.com/api/order-status")
		t.Setenv("DASH_ORDER_STATUS_STALE_TIME", "1m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, "https://status.example.com/api/order-status", cfg.OrderStatus.APIURL)
		assert.Equal(t, time.Minute, cfg.OrderStatus.StaleTime)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearDashEnv(t)
		t.Setenv("DASH_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("DASH_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		clearDashEnv(t)
		t.Setenv("DASH_DATABASE_DRIVER", "oracle")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("rejects relative order status URL", func(t *testing.T) {
		clearDashEnv(t)
		t.Setenv("DASH_ORDER_STATUS_API_URL", "/order-status")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "order_status.api_url")
	})

	t.Run("production requires a long JWT secret", func(t *testing.T) {
		clearDashEnv(t)
		t.Setenv("DASH_APP_ENV", "production")
		t.Setenv("DASH_JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})
}

func TestLoadFile(t *testing.T) {
	clearDashEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[database]
driver = "sqlite"
path = ":memory:"

[dashboard]
recent_orders_limit = 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.DSN())
	assert.Equal(t, 3, cfg.Dashboard.RecentOrdersLimit)
	assert.Equal(t, 3, cfg.OrderStatus.MaxRetries)
}

func TestLoad_OrderStatusRetriesCanBeDisabled(t *testing.T) {
	t.Run("from environment", func(t *testing.T) {
		clearDashEnv(t)
		t.Setenv("DASH_ORDER_STATUS_MAX_RETRIES", "0")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 0, cfg.OrderStatus.MaxRetries)
	})

	t.Run("from file", func(t *testing.T) {
		clearDashEnv(t)
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[order_status]
max_retries = 0
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 0, cfg.OrderStatus.MaxRetries)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Driver:   DriverPostgres,
		Host:     "db",
		Port:     5432,
		User:     "dash",
		Password: "p@ss word",
		DBName:   "dashboard",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://dash:p%40ss%20word@db:5432/dashboard?sslmode=disable", cfg.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: 6380}.Addr())
}
