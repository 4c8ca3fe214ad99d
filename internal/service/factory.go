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

// NewServiceParams assembles the common service dependencies
func NewServiceParams(
	log *logger.Logger,
	cfg *config.Configuration,
	cacheStore cache.Cache,
	transactionRepo transaction.Repository,
	invoiceRepo invoice.Repository,
	invoiceService invoice.Service,
	fundsService billing.FundsService,
	paystackClient *paystack.Client,
) ServiceParams {
	return ServiceParams{
		Logger:          log,
		Config:          cfg,
		Cache:           cacheStore,
		TransactionRepo: transactionRepo,
		InvoiceRepo:     invoiceRepo,
		InvoiceService:  invoiceService,
		FundsService:    fundsService,
		Paystack:        paystackClient,
	}
}
