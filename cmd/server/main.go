package main

import (
	"context"
	"time"

	"github.com/flexprice/paystack-bridge/internal/api"
	v1 "github.com/flexprice/paystack-bridge/internal/api/v1"
	"github.com/flexprice/paystack-bridge/internal/cache"
	"github.com/flexprice/paystack-bridge/internal/config"
	"github.com/flexprice/paystack-bridge/internal/httpclient"
	"github.com/flexprice/paystack-bridge/internal/logger"
	"github.com/flexprice/paystack-bridge/internal/paystack"
	"github.com/flexprice/paystack-bridge/internal/postgres"
	"github.com/flexprice/paystack-bridge/internal/repository"
	"github.com/flexprice/paystack-bridge/internal/service"
	"github.com/flexprice/paystack-bridge/internal/webhook"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewClient,

			// HTTP client
			provideHTTPClient,

			// Gateway
			paystack.NewClient,
			webhook.NewVerifier,

			// Repositories
			repository.NewTransactionRepository,
			repository.NewInvoiceRepository,
			repository.NewFundsService,
			repository.NewInvoiceService,

			// Services
			service.NewServiceParams,
			service.NewReconciliationService,
			service.NewCheckoutService,
			service.NewTransactionService,

			// Handlers
			v1.NewHealthHandler,
			v1.NewWebhookHandler,
			v1.NewCallbackHandler,
			v1.NewCheckoutHandler,
			v1.NewTransactionHandler,

			// Router
			api.NewRouter,
		),
		fx.Invoke(startAPIServer),
	)

	app.Run()
}

func provideHTTPClient(cfg *config.Configuration) httpclient.Client {
	return httpclient.NewClientWithConfig(httpclient.ClientConfig{
		Timeout: cfg.Paystack.Timeout,
	})
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
