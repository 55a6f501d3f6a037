package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "local", cfg.BlobBackend)
	assert.Equal(t, "sonority.events", cfg.RabbitMQExchange)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "host=db user=sonority")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("RATE_LIMIT_MAX", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "host=db user=sonority", cfg.DatabaseDSN)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 5, cfg.RateLimitMax)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("DATABASE_DRIVER", "oracle")
		_, err := Load()
		assert.ErrorContains(t, err, "DATABASE_DRIVER")
	})
	t.Run("s3 without bucket", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("BLOB_BACKEND", "s3")
		_, err := Load()
		assert.ErrorContains(t, err, "S3_BUCKET")
	})
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SONORITY_DOTENV_PROBE=loaded\n"), 0o600))
	t.Setenv("SONORITY_DOTENV_PROBE", "")
	os.Unsetenv("SONORITY_DOTENV_PROBE")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("SONORITY_DOTENV_PROBE"))

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
