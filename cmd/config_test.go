package cmd_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fulfillment/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, cmd.StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "order_status_fanout", cfg.RabbitMQExchange)
	assert.Equal(t, time.UTC, cfg.StatsLocation)
	assert.Zero(t, cfg.PackingSessionTTL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=fulfillment sslmode=disable", cfg.DSN())
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Badger")
	t.Setenv("STATS_TIMEZONE", "Asia/Kolkata")
	t.Setenv("PACKING_SESSION_TTL", "90m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := cmd.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, cmd.StoreDriverBadger, cfg.StoreDriver)
	assert.Equal(t, "Asia/Kolkata", cfg.StatsLocation.String())
	assert.Equal(t, 90*time.Minute, cfg.PackingSessionTTL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 90*time.Minute, cfg.Jobs().SessionTTL)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_PORT=9191\n"), 0o600))
	t.Setenv("HTTP_PORT", "")
	require.NoError(t, os.Unsetenv("HTTP_PORT"))

	cfg, err := cmd.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "9191", cfg.HTTPPort)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("STATS_TIMEZONE", "Mars/Olympus")
	t.Setenv("PACKING_SESSION_TTL", "-1h")
	t.Setenv("LOG_LEVEL", "loud")

	_, err := cmd.LoadConfig()

	require.Error(t, err)
	for _, key := range []string{"STORE_DRIVER", "STATS_TIMEZONE", "PACKING_SESSION_TTL", "LOG_LEVEL"} {
		assert.Contains(t, err.Error(), key)
	}
}
