package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SECRET_KEY", "DATABASE_PATH", "STORAGE_TYPE", "REDIS_URL", "ADDR"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "change-me", cfg.SecretKey)
	assert.Equal(t, "numguess.db", cfg.DatabasePath)
	assert.Equal(t, StorageTypeMemory, cfg.StorageType)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.True(t, cfg.UsingDefaultSecret())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SECRET_KEY", "real-secret")
	t.Setenv("DATABASE_PATH", "/tmp/other.db")
	t.Setenv("STORAGE_TYPE", StorageTypeRedis)
	t.Setenv("REDIS_URL", "redis://example:6379")
	t.Setenv("ADDR", ":9090")

	cfg := Load()
	assert.Equal(t, "real-secret", cfg.SecretKey)
	assert.Equal(t, "/tmp/other.db", cfg.DatabasePath)
	assert.Equal(t, StorageTypeRedis, cfg.StorageType)
	assert.Equal(t, "redis://example:6379", cfg.RedisURL)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.False(t, cfg.UsingDefaultSecret())
}
