package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "hms-be", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, int64(50<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "data_ingestion", cfg.Queue.Channel)
	assert.False(t, cfg.Queue.Enabled())
	assert.Equal(t, time.Hour, cfg.Worker.PurgeInterval)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  port: 9000
database:
  driver: postgres
  host: db
queue:
  host: redis
log:
  level: debug
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("PORT", "7000")
	t.Setenv("DB_URI", "postgres://u:p@db/hms")
	t.Setenv("QUEUE_PORT", "6380")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://u:p@db/hms", cfg.Database.URI)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.True(t, cfg.Queue.Enabled())
	assert.Equal(t, 6380, cfg.Queue.Port)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")

	_, err := LoadConfig(t.TempDir())
	assert.EqualError(t, err, `unsupported database driver "sqlite"`)
}

func TestLoadConfigBadEnv(t *testing.T) {
	t.Setenv("PORT", "eighty")

	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
