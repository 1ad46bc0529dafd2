package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mfranke/numguess/internal/config"
	"github.com/mfranke/numguess/internal/dependencies/clock"
	"github.com/mfranke/numguess/internal/dependencies/random"
	"github.com/mfranke/numguess/internal/services/auth"
	"github.com/mfranke/numguess/internal/services/game"
	"github.com/mfranke/numguess/internal/storage"
	"github.com/mfranke/numguess/internal/storage/memory"
	redisstorage "github.com/mfranke/numguess/internal/storage/redis"
	"github.com/mfranke/numguess/internal/store"
)

// App contains all wired application components
type App struct {
	// Persistence
	Store   *store.Store
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService *auth.Service
	GameService *game.Service
}

// Config holds configuration for the application factory
type Config struct {
	// DatabasePath is the sqlite database location
	DatabasePath string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the session storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()
	rnd := random.New()

	db, err := store.Open(cfg.DatabasePath, clk)
	if err != nil {
		return nil, err
	}

	// Create session storage based on type
	var sessions storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageTypeMemory
	}

	switch storageType {
	case config.StorageTypeMemory:
		sessions = memory.New()
	case config.StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		sessions = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionTTL == 0 {
		authCfg = auth.Config{
			SecretKey:  authCfg.SecretKey,
			SessionTTL: auth.DefaultConfig().SessionTTL,
		}
	}

	return newWithDependencies(db, sessions, clk, rnd, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(db *store.Store, sessions storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	authService := auth.New(db, sessions, clk, authCfg)
	gameService := game.New(sessions, db, rnd, logger)

	return &App{
		Store:       db,
		Storage:     sessions,
		Clock:       clk,
		Random:      rnd,
		AuthService: authService,
		GameService: gameService,
	}
}

// Close releases the App's persistent resources
func (a *App) Close() error {
	var errs []error
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	if closer, ok := a.Storage.(interface{ Close() error }); ok {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}
