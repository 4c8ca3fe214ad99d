package service

import (
	"github.com/flexprice/paystack-bridge/internal/cache"
	"github.com/flexprice/paystack-bridge/internal/config"
	"github.com/flexprice/paystack-bridge/internal/domain/billing"
	"github.com/flexprice/paystack-bridge/internal/domain/invoice"
	"github.com/flexprice/paystack-bridge/internal/domain/transaction"
	"github.com/flexprice/paystack-bridge/internal/logger"
	"github.com/flexprice/paystack-bridge/internal/paystack"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache

	// Repositories
	TransactionRepo transaction.Repository
	InvoiceRepo     invoice.Repository

	// CRM surfaces
	InvoiceService invoice.Service
	FundsService   billing.FundsService

	// Gateway
	Paystack *paystack.Client
}
