package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/davidrico/checkout/internal/domain/delivery"
	"github.com/davidrico/checkout/internal/domain/product"
	"github.com/davidrico/checkout/internal/domain/stock"
	"github.com/davidrico/checkout/internal/domain/transaction"
	"github.com/davidrico/checkout/internal/infrastructure/config"
	"github.com/davidrico/checkout/internal/infrastructure/observability"
	infraRedis "github.com/davidrico/checkout/internal/infrastructure/redis"
	"github.com/davidrico/checkout/internal/providers"
	"github.com/davidrico/checkout/internal/repository/memory"
	"github.com/davidrico/checkout/internal/repository/postgres"
	"github.com/davidrico/checkout/internal/repository/rediscache"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// App holds the wired infrastructure and repositories for a process. Pool
// and Redis are nil when the configured storage driver does not use them.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Pool    *pgxpool.Pool
	Redis   *redis.Client
	Metrics *observability.Metrics

	ProductRepo     product.Repository
	StockRepo       stock.Repository
	TransactionRepo transaction.Repository
	DeliveryRepo    delivery.Repository
	Provider        providers.Provider
}

func New(ctx context.Context, serviceName string, metricsNamespace string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := observability.InitLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.Info().Str("service", serviceName).Msg("Starting")

	if cfg.Observability.EnableTracing {
		tp, err := observability.InitTracer(serviceName, cfg.InstanceID, cfg.Observability.JaegerEndpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
		} else {
			go func() {
				<-ctx.Done()
				observability.ShutdownTracer(context.Background(), tp)
			}()
			logger.Info().Msg("Tracing enabled")
		}
	}

	metrics := observability.NewMetrics(metricsNamespace, nil)
	logger.Info().Msg("Metrics initialized")

	app := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
	}

	if err := app.initStorage(ctx); err != nil {
		return nil, err
	}

	if err := app.initProvider(); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

func (a *App) initStorage(ctx context.Context) error {
	switch a.Config.Storage.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, &a.Config.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		a.Pool = pool
		a.ProductRepo = postgres.NewProductRepository(pool)
		a.StockRepo = postgres.NewStockRepository(pool)
		a.TransactionRepo = postgres.NewTransactionRepository(pool)
		a.DeliveryRepo = postgres.NewDeliveryRepository(pool)
		a.Logger.Info().Msg("Connected to PostgreSQL")

	case "memory":
		store := memory.NewSeededStore()
		a.ProductRepo = memory.NewProductRepository(store)
		a.StockRepo = memory.NewStockRepository(store)
		a.TransactionRepo = memory.NewTransactionRepository(store)
		a.DeliveryRepo = memory.NewDeliveryRepository(store)
		a.Logger.Info().Msg("Using in-memory storage with seeded catalog")

	default:
		return fmt.Errorf("unknown storage driver %q", a.Config.Storage.Driver)
	}

	if a.Config.Storage.EnableCache {
		redisClient, err := infraRedis.NewClient(ctx, &a.Config.Redis)
		if err != nil {
			a.Close()
			return fmt.Errorf("connect to redis: %w", err)
		}
		a.Redis = redisClient
		a.ProductRepo = rediscache.NewProductCache(a.ProductRepo, redisClient, a.Config.Redis.CacheTTL, a.Logger)
		a.Logger.Info().Msg("Connected to Redis, product cache enabled")
	}

	return nil
}

func (a *App) initProvider() error {
	factory := providers.NewFactory(
		providers.WithBreakerSettings(a.Config.Provider.CircuitBreakerThreshold, a.Config.Provider.CircuitBreakerTimeout),
		providers.WithStateChangeHook(func(name string, state gobreaker.State) {
			a.Metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(state))
			a.Logger.Warn().Str("breaker", name).Str("state", state.String()).Msg("circuit breaker state changed")
		}),
	)

	switch a.Config.Provider.Name {
	case "sandbox":
		factory.Register(providers.NewSandboxProvider(providers.SandboxConfig{
			BaseURL:      a.Config.Provider.BaseURL,
			PublicKey:    a.Config.Provider.PublicKey,
			PrivateKey:   a.Config.Provider.PrivateKey,
			IntegrityKey: a.Config.Provider.IntegrityKey,
			Timeout:      a.Config.Provider.Timeout,
		}))
	case "mock":
		factory.Register(providers.NewMockProvider("mock"))
	default:
		return fmt.Errorf("unknown payment provider %q", a.Config.Provider.Name)
	}

	p, err := factory.Get(a.Config.Provider.Name)
	if err != nil {
		return err
	}
	a.Provider = providers.NewInstrumented(p, a.Metrics)
	a.Logger.Info().Str("provider", a.Config.Provider.Name).Msg("Payment provider initialized")
	return nil
}

func (a *App) Close() {
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.Pool != nil {
		a.Pool.Close()
	}
}
