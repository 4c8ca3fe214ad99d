package repository

import (
	"github.com/flexprice/paystack-bridge/internal/domain/billing"
	"github.com/flexprice/paystack-bridge/internal/domain/invoice"
	"github.com/flexprice/paystack-bridge/internal/domain/transaction"
	"github.com/flexprice/paystack-bridge/internal/logger"
	"github.com/flexprice/paystack-bridge/internal/repository/postgres"
	"github.com/jmoiron/sqlx"
)

// NewTransactionRepository creates the transaction repository
func NewTransactionRepository(db *sqlx.DB, log *logger.Logger) transaction.Repository {
	return postgres.NewTransactionRepository(db, log)
}

// NewInvoiceRepository creates the invoice repository
func NewInvoiceRepository(db *sqlx.DB, log *logger.Logger) invoice.Repository {
	return postgres.NewInvoiceRepository(db, log)
}

// NewFundsService creates the CRM funds service
func NewFundsService(db *sqlx.DB, log *logger.Logger) billing.FundsService {
	return postgres.NewFundsService(db, log)
}

// NewInvoiceService creates the CRM invoice service
func NewInvoiceService(db *sqlx.DB, log *logger.Logger) invoice.Service {
	return postgres.NewInvoiceService(db, log)
}
