package api

import (
	v1 "github.com/flexprice/paystack-bridge/internal/api/v1"
	"github.com/flexprice/paystack-bridge/internal/config"
	"github.com/flexprice/paystack-bridge/internal/logger"
	"github.com/flexprice/paystack-bridge/internal/rest/middleware"
	"github.com/flexprice/paystack-bridge/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// Handlers bundles all HTTP handlers for the router
type Handlers struct {
	fx.In

	Health      *v1.HealthHandler
	Webhook     *v1.WebhookHandler
	Callback    *v1.CallbackHandler
	Checkout    *v1.CheckoutHandler
	Transaction *v1.TransactionHandler
}

// NewRouter builds the gin engine with all routes mounted. The webhook
// route bypasses the error handler middleware; its acknowledgement
// semantics are decided by the handler itself.
func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)

	router.GET("/health", handlers.Health.Health)

	hooks := router.Group("/v1/webhooks")
	{
		hooks.POST("/paystack", handlers.Webhook.HandlePaystack)
	}

	callbacks := router.Group("/v1/callbacks")
	{
		callbacks.GET("/paystack", handlers.Callback.HandlePaystack)
		callbacks.POST("/paystack", handlers.Callback.HandlePaystack)
	}

	private := router.Group("/v1")
	private.Use(middleware.ErrorHandler())
	{
		private.POST("/checkouts", handlers.Checkout.CreateCheckout)
		private.GET("/transactions", handlers.Transaction.ListTransactions)
		private.GET("/transactions/:id", handlers.Transaction.GetTransaction)
	}

	return router
}
