package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/mfranke/numguess/internal/services/auth"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config holds process configuration, sourced from the environment with
// fallback defaults. A .env file in the working directory is honored
// when present.
type Config struct {
	// SecretKey signs session cookies. The default is a known
	// placeholder; see UsingDefaultSecret.
	SecretKey string

	// DatabasePath is the sqlite database location
	DatabasePath string

	// StorageType selects the session storage backend ("memory" or "redis")
	StorageType string

	// RedisURL is required when StorageType is "redis"
	RedisURL string

	// Addr is the HTTP listen address
	Addr string
}

// Load reads configuration from the environment
func Load() Config {
	_ = godotenv.Load()

	return Config{
		SecretKey:    getenv("SECRET_KEY", auth.DefaultSecretKey),
		DatabasePath: getenv("DATABASE_PATH", "numguess.db"),
		StorageType:  getenv("STORAGE_TYPE", StorageTypeMemory),
		RedisURL:     os.Getenv("REDIS_URL"),
		Addr:         getenv("ADDR", ":8080"),
	}
}

// UsingDefaultSecret reports whether the fallback signing key is in
// use. Deployments should treat this as a misconfiguration.
func (c Config) UsingDefaultSecret() bool {
	return c.SecretKey == auth.DefaultSecretKey
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
