package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/davidrico/checkout/internal/application/checkout"
	"github.com/davidrico/checkout/internal/bootstrap"
	"github.com/davidrico/checkout/internal/controller"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := bootstrap.New(ctx, "checkout-api", "checkout")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// --- Use cases ---
	startUC := checkout.NewStartCheckoutUseCase(app.ProductRepo, app.StockRepo, app.TransactionRepo)
	confirmUC := checkout.NewConfirmCheckoutUseCase(
		app.TransactionRepo,
		app.Provider,
		app.StockRepo,
		app.DeliveryRepo,
		app.Config.Checkout.Currency,
		app.Logger,
	)
	getProductUC := checkout.NewGetProductUseCase(app.ProductRepo, app.StockRepo)
	getStatusUC := checkout.NewGetTransactionStatusUseCase(app.TransactionRepo)

	// --- Build router ---
	router := controller.NewRouter(controller.RouterDeps{
		Pool:         app.Pool,
		RedisClient:  app.Redis,
		StartUC:      startUC,
		ConfirmUC:    confirmUC,
		GetProductUC: getProductUC,
		GetStatusUC:  getStatusUC,
		Metrics:      app.Metrics,
		CORSConfig:   app.Config.Server.CORS,
		BaseFee:      app.Config.Checkout.BaseFee,
		DeliveryFee:  app.Config.Checkout.DeliveryFee,

		ExposeMetrics: app.Config.Observability.EnableMetrics,
	})

	// --- HTTP server ---
	addr := fmt.Sprintf(":%d", app.Config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.Logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-gCtx.Done():
			return gCtx.Err()
		case <-quit:
		}

		app.Logger.Info().Msg("Shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.Logger.Error().Err(err).Msg("Server forced to shutdown")
		}
		cancel()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		app.Logger.Error().Err(err).Msg("Server error")
	}
	app.Logger.Info().Msg("Server exited")
}
