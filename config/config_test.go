package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FUSION_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "flavourfusion.db", cfg.SQLitePath)
	assert.Equal(t, "", cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FUSION_JWT_SECRET", "test-secret")
	t.Setenv("FUSION_SERVER_PORT", "9000")
	t.Setenv("FUSION_DB_DRIVER", "postgres")
	t.Setenv("FUSION_DB_HOST", "db.internal")
	t.Setenv("FUSION_DB_PASSWORD", "hunter2")
	t.Setenv("FUSION_REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Contains(t, cfg.PostgresDSN(), "host=db.internal")
	assert.Contains(t, cfg.PostgresDSN(), "password=hunter2")
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("FUSION_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FUSION_JWT_SECRET")
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("FUSION_JWT_SECRET", "test-secret")
	t.Setenv("FUSION_DB_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown database driver")
}
