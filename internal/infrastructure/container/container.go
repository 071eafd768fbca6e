// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"io"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	aiapp "github.com/savory/api/internal/application/ai"
	pantryapp "github.com/savory/api/internal/application/pantry"
	recipeapp "github.com/savory/api/internal/application/recipe"
	"github.com/savory/api/internal/infrastructure/ai"
	"github.com/savory/api/internal/infrastructure/config"
	"github.com/savory/api/internal/infrastructure/http/apiserver"
	"github.com/savory/api/internal/infrastructure/monitoring"
	gormstore "github.com/savory/api/internal/infrastructure/persistence/gorm"
	"github.com/savory/api/internal/infrastructure/persistence/memory"
	redisstore "github.com/savory/api/internal/infrastructure/persistence/redis"
	"github.com/savory/api/internal/ports/inbound"
	"github.com/savory/api/internal/ports/outbound"
	"github.com/savory/api/pkg/healthcheck"
	"github.com/savory/api/pkg/logger"
)

// ConfigPath is the config file to load. Empty means search the default locations.
type ConfigPath string

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	StoreModule,
	CacheModule,
	AIModule,
	ServiceModule,
	MonitoringModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func(path ConfigPath) (*config.Config, error) {
		return config.Load(string(path))
	},
)

// LoggerModule provides the logger and the level handle the config watcher adjusts
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, zap.AtomicLevel, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.IsDevelopment(),
		})
	},
)

// Store bundles the repositories of the configured driver.
type Store struct {
	Recipes outbound.RecipeRepository
	Pantry  outbound.PantryRepository
	Ping    func(ctx context.Context) error
}

// StoreModule provides the recipe and pantry repositories
var StoreModule = fx.Provide(
	NewStore,
	func(s *Store) outbound.RecipeRepository { return s.Recipes },
	func(s *Store) outbound.PantryRepository { return s.Pantry },
)

// NewStore opens the store named by store.driver. SQL stores are closed on stop.
func NewStore(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*Store, error) {
	if cfg.Store.Driver == config.StoreMemory {
		log.Info("Using in-memory store")
		return &Store{
			Recipes: memory.NewRecipeRepository(),
			Pantry:  memory.NewPantryRepository(),
			Ping:    func(context.Context) error { return nil },
		}, nil
	}

	db, err := gormstore.Open(cfg, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return gormstore.Close(db)
		},
	})

	return &Store{
		Recipes: gormstore.NewRecipeRepository(db),
		Pantry:  gormstore.NewPantryRepository(db),
		Ping:    func(ctx context.Context) error { return gormstore.Ping(ctx, db) },
	}, nil
}

// CacheModule provides caching
var CacheModule = fx.Provide(NewCache)

// NewCache returns the redis cache when enabled and the in-memory cache otherwise.
func NewCache(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
	var cache interface {
		outbound.CacheRepository
		io.Closer
	}

	if cfg.Redis.Enable {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		rc, err := redisstore.NewCacheRepository(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		cache = rc
	} else {
		log.Info("Using in-memory cache")
		cache = memory.NewCacheRepository()
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return cache.Close()
		},
	})
	return cache, nil
}

// AIModule provides the chat completer, nil when no credential is configured
var AIModule = fx.Provide(NewChatCompleter)

// NewChatCompleter builds the configured provider and closes it on stop when it holds a connection.
func NewChatCompleter(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (outbound.ChatCompleter, error) {
	completer, err := ai.NewChatCompleter(context.Background(), cfg.AI, log)
	if err != nil {
		return nil, err
	}

	if closer, ok := completer.(io.Closer); ok {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})
	}
	return completer, nil
}

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	fx.Annotate(
		recipeapp.NewRecipeService,
		fx.As(new(inbound.RecipeService)),
		fx.As(fx.Self()),
	),
	fx.Annotate(
		pantryapp.NewPantryService,
		fx.As(new(inbound.PantryService)),
	),
	fx.Annotate(
		func(
			completer outbound.ChatCompleter,
			cache outbound.CacheRepository,
			metrics *monitoring.MetricsCollector,
			cfg *config.Config,
			log *zap.Logger,
		) *aiapp.CopilotService {
			return aiapp.NewCopilotService(completer, cache, metrics, aiapp.Config{
				EnableCache: cfg.AI.EnableCache,
				CacheTTL:    cfg.AI.CacheTTL,
			}, log)
		},
		fx.As(new(inbound.CopilotService)),
	),
)

// MonitoringModule provides metrics, tracing and health checks
var MonitoringModule = fx.Provide(
	monitoring.NewMetricsCollector,
	NewTracing,
	NewHealthCheck,
)

// NewTracing starts the OTLP exporter when tracing is enabled and flushes it on stop.
func NewTracing(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
	tp, err := monitoring.NewTracingProvider(context.Background(), monitoring.TracingConfig{
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		OTLPEndpoint:   cfg.Monitoring.OTLPEndpoint,
		Insecure:       cfg.Monitoring.OTLPInsecure,
		SamplingRate:   cfg.Monitoring.SamplingRate,
		Enabled:        cfg.Monitoring.EnableTracing,
	}, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: tp.Shutdown,
	})
	return tp, nil
}

// NewHealthCheck registers the store and cache as readiness dependencies.
func NewHealthCheck(cfg *config.Config, log *zap.Logger, store *Store, cache outbound.CacheRepository) *healthcheck.HealthCheck {
	health := healthcheck.New(cfg.App.Version, log)
	health.Register("store", healthcheck.NewPingChecker(store.Ping))
	health.Register("cache", healthcheck.NewPingChecker(cache.Ping))
	return health
}

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(apiserver.NewServer)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(RegisterLifecycleHooks)

// RegisterLifecycleHooks seeds the store, starts the config watcher and runs the server.
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	path ConfigPath,
	level zap.AtomicLevel,
	log *zap.Logger,
	recipes *recipeapp.RecipeService,
	_ *monitoring.TracingProvider,
	server *apiserver.Server,
) {
	watcher := config.NewWatcher(string(path), level, log)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Savory API",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.String("store", cfg.Store.Driver),
				zap.String("ai_provider", cfg.AI.Provider),
			)

			if cfg.Store.Seed {
				inserted, err := recipes.SeedIfEmpty(ctx)
				if err != nil {
					return err
				}
				if inserted > 0 {
					log.Info("Seeded starter recipes", zap.Int("count", inserted))
				}
			}

			if _, err := watcher.Start(); err != nil {
				log.Warn("Config watcher disabled", zap.Error(err))
			}

			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Savory API")
			watcher.Stop()

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			_ = log.Sync()
			return nil
		},
	})
}
