package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/cinelog/cinelog/internal/dependencies/clock"
	"github.com/cinelog/cinelog/internal/services/account"
	"github.com/cinelog/cinelog/internal/services/auth"
	"github.com/cinelog/cinelog/internal/services/review"
	"github.com/cinelog/cinelog/internal/storage"
	"github.com/cinelog/cinelog/internal/storage/memory"
	redisstorage "github.com/cinelog/cinelog/internal/storage/redis"
	"github.com/cinelog/cinelog/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeSqlite = "sqlite"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService    *auth.Service
	AccountService *account.Service
	ReviewService  *review.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "sqlite" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// SqlitePath is the database file path (required if StorageType is "sqlite")
	SqlitePath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeSqlite:
		if cfg.SqlitePath == "" {
			return nil, errors.New("SqlitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlite.New(cfg.SqlitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'sqlite' or 'redis'")
	}

	logger.Info("storage initialized", slog.String("type", storageType))

	clk := clock.New()

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, authCfg), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, authCfg auth.Config) *App {
	authService := auth.New(store, clk, authCfg)
	accountService := account.New(store, clk)
	reviewService := review.New(store, clk)

	return &App{
		Storage:        store,
		Clock:          clk,
		AuthService:    authService,
		AccountService: accountService,
		ReviewService:  reviewService,
	}
}
