package controller

import (
	"time"

	"github.com/davidrico/checkout/internal/application/checkout"
	"github.com/davidrico/checkout/internal/infrastructure/config"
	"github.com/davidrico/checkout/internal/infrastructure/observability"
	customMW "github.com/davidrico/checkout/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	Pool         *pgxpool.Pool
	RedisClient  *redis.Client
	StartUC      *checkout.StartCheckoutUseCase
	ConfirmUC    *checkout.ConfirmCheckoutUseCase
	GetProductUC *checkout.GetProductUseCase
	GetStatusUC  *checkout.GetTransactionStatusUseCase
	Metrics      *observability.Metrics
	CORSConfig   config.CORSConfig
	BaseFee      int64
	DeliveryFee  int64

	// ExposeMetrics controls whether /metrics is mounted. Collection
	// happens either way.
	ExposeMetrics bool
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(customMW.SecurityHeaders())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSConfig.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: deps.CORSConfig.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(customMW.Metrics(deps.Metrics))
	r.Use(customMW.RateLimit(300))

	healthH := NewHealthController(deps.Pool, deps.RedisClient)
	checkoutH := NewCheckoutController(deps.StartUC, deps.ConfirmUC, deps.Metrics, deps.BaseFee, deps.DeliveryFee)
	productH := NewProductController(deps.GetProductUC)
	transactionH := NewTransactionController(deps.GetStatusUC)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	if deps.ExposeMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Checkout
		r.Post("/checkout/start", checkoutH.Start)
		r.Post("/checkout/confirm", checkoutH.Confirm)

		// Catalog
		r.Get("/products/{id}", productH.Get)

		// Transactions
		r.Get("/transactions/{id}", transactionH.Get)
	})

	return r
}
