package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv sets the minimum environment a successful load needs.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "pass")
	t.Setenv("DB_NAME", "moodmoment")
	t.Setenv("AUTH_TOKEN_SECRET", "test-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DBPool.Host)
	assert.Equal(t, 5432, cfg.DBPool.Port)
	assert.Equal(t, "app", cfg.DBPool.User)
	assert.Equal(t, "moodmoment", cfg.DBPool.DBName)
	assert.Equal(t, 10, cfg.DBPool.MaxSize)

	assert.Equal(t, "test-secret", cfg.Auth.TokenSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, time.Hour, cfg.Auth.ResetTokenTTL)
	assert.False(t, cfg.Auth.LegacyTokenVerify)
	assert.False(t, cfg.Auth.ExposeResetLink)

	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_POOL_SIZE", "25")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL", "15m")
	t.Setenv("AUTH_RESET_TOKEN_TTL", "30m")
	t.Setenv("AUTH_LEGACY_TOKEN_VERIFY", "true")
	t.Setenv("AUTH_EXPOSE_RESET_LINK", "true")
	t.Setenv("PORT", "9000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DBPool.Host)
	assert.Equal(t, 5433, cfg.DBPool.Port)
	assert.Equal(t, 25, cfg.DBPool.MaxSize)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 30*time.Minute, cfg.Auth.ResetTokenTTL)
	assert.True(t, cfg.Auth.LegacyTokenVerify)
	assert.True(t, cfg.Auth.ExposeResetLink)
	assert.Equal(t, "9000", cfg.Server.Port)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "pass")
	// t.Setenv registers the restore; Unsetenv makes the variable truly
	// absent for the duration of the test even if the host env sets it.
	for _, key := range []string{"DB_NAME", "AUTH_TOKEN_SECRET"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_NAME")
	assert.Contains(t, err.Error(), "AUTH_TOKEN_SECRET")
}

func TestLoadConfigInvalidValues(t *testing.T) {
	t.Run("bad port", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("DB_PORT", "not-a-number")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_PORT")
	})

	t.Run("bad duration", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("AUTH_ACCESS_TOKEN_TTL", "yesterday")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AUTH_ACCESS_TOKEN_TTL")
	})

	t.Run("bad bool", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("AUTH_LEGACY_TOKEN_VERIFY", "maybe")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AUTH_LEGACY_TOKEN_VERIFY")
	})

	t.Run("pool size out of range", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("DB_POOL_SIZE", "2")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_POOL_SIZE")
	})
}
