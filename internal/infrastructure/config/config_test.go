package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "salesbridge-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 4, cfg.Refresh.Workers)
	assert.Equal(t, 500, cfg.Refresh.ChunkSize)
	assert.Equal(t, []string{"confirmed", "shipped", "delivered"}, cfg.Refresh.EligibleOrderStatuses)
	assert.Equal(t, []string{"accepted"}, cfg.Refresh.EligibleAcceptanceStatuses)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SALESBRIDGE_APP_PORT", "9090")
	t.Setenv("SALESBRIDGE_DATABASE_HOST", "db.internal")
	t.Setenv("SALESBRIDGE_REDIS_ENABLED", "true")
	t.Setenv("SALESBRIDGE_LOG_LEVEL", "debug")
	t.Setenv("SALESBRIDGE_REFRESH_WORKERS", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 8, cfg.Refresh.Workers)
}

func TestLoad_Validation(t *testing.T) {
	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		t.Setenv("SALESBRIDGE_DATABASE_MAX_IDLE_CONNS", "50")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
	})

	t.Run("production requires a database password", func(t *testing.T) {
		t.Setenv("SALESBRIDGE_APP_ENV", "production")
		t.Setenv("SALESBRIDGE_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})

	t.Run("production rejects disabled ssl", func(t *testing.T) {
		t.Setenv("SALESBRIDGE_APP_ENV", "production")
		t.Setenv("SALESBRIDGE_DATABASE_PASSWORD", "secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "salesbridge",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.NotContains(t, dsn, "p@ss/word", "special characters are escaped")
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
