package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/flexprice/paystack-bridge/internal/domain/billing"
	"github.com/flexprice/paystack-bridge/internal/domain/invoice"
	ierr "github.com/flexprice/paystack-bridge/internal/errors"
	"github.com/flexprice/paystack-bridge/internal/logger"
	"github.com/flexprice/paystack-bridge/internal/types"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// crmBilling drives the CRM's balance and invoice tables directly. It
// implements both the funds and the invoice service surfaces so the
// reconciliation flow has a single storage-backed implementation.
type crmBilling struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewFundsService exposes the adapter as a funds service
func NewFundsService(db *sqlx.DB, log *logger.Logger) billing.FundsService {
	return &crmBilling{db: db, logger: log}
}

// NewInvoiceService exposes the adapter as an invoice service
func NewInvoiceService(db *sqlx.DB, log *logger.Logger) invoice.Service {
	return &crmBilling{db: db, logger: log}
}

// AddFunds appends a credit entry to the client's balance ledger
func (b *crmBilling) AddFunds(ctx context.Context, clientID string, amount decimal.Decimal, description string, metadata types.Metadata) error {
	query := `
		INSERT INTO client_balance (id, client_id, amount, description, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	id := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EVENT)
	if _, err := b.db.ExecContext(ctx, query, id, clientID, amount, description, metadata, time.Now().UTC()); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to credit client balance").
			Mark(ierr.ErrDatabase)
	}

	b.logger.Infow("funds added",
		"client_id", clientID,
		"amount", amount.String(),
		"description", description)
	return nil
}

// TotalWithTax returns the amount needed to settle the invoice in full
func (b *crmBilling) TotalWithTax(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := b.db.GetContext(ctx, &total,
		`SELECT total + tax FROM invoices WHERE id = $1`, invoiceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, ierr.NewError("invoice not found").
				WithHintf("Invoice %s does not exist", invoiceID).
				Mark(ierr.ErrNotFound)
		}
		return decimal.Zero, ierr.WithError(err).
			WithHint("Failed to compute invoice total").
			Mark(ierr.ErrDatabase)
	}
	return total, nil
}

// PayWithCredits settles one invoice from the client's balance if the
// balance covers it
func (b *crmBilling) PayWithCredits(ctx context.Context, invoiceID string) error {
	return b.withTx(ctx, func(tx *sqlx.Tx) error {
		var row struct {
			ClientID string          `db:"client_id"`
			Due      decimal.Decimal `db:"due"`
			Status   string          `db:"status"`
		}
		err := tx.GetContext(ctx, &row, `
			SELECT client_id, total + tax AS due, status
			FROM invoices WHERE id = $1 FOR UPDATE`, invoiceID)
		if err != nil {
			if err == sql.ErrNoRows {
				return ierr.NewError("invoice not found").
					WithHintf("Invoice %s does not exist", invoiceID).
					Mark(ierr.ErrNotFound)
			}
			return ierr.WithError(err).
				WithHint("Failed to load invoice for payment").
				Mark(ierr.ErrDatabase)
		}
		if row.Status == "paid" {
			return nil
		}

		return b.settleTx(ctx, tx, invoiceID, row.ClientID, row.Due)
	})
}

// BatchPayWithCredits settles the client's unpaid invoices oldest first
// until the balance runs out
func (b *crmBilling) BatchPayWithCredits(ctx context.Context, clientID string) error {
	return b.withTx(ctx, func(tx *sqlx.Tx) error {
		var invoices []struct {
			ID  string          `db:"id"`
			Due decimal.Decimal `db:"due"`
		}
		err := tx.SelectContext(ctx, &invoices, `
			SELECT id, total + tax AS due
			FROM invoices
			WHERE client_id = $1 AND status = 'unpaid'
			ORDER BY created_at ASC
			FOR UPDATE`, clientID)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Failed to load unpaid invoices").
				Mark(ierr.ErrDatabase)
		}

		for _, inv := range invoices {
			if err := b.settleTx(ctx, tx, inv.ID, clientID, inv.Due); err != nil {
				if ierr.IsInvalidOperation(err) {
					// balance exhausted, remaining invoices stay unpaid
					return nil
				}
				return err
			}
		}
		return nil
	})
}

// settleTx debits the balance and marks the invoice paid inside tx
func (b *crmBilling) settleTx(ctx context.Context, tx *sqlx.Tx, invoiceID, clientID string, due decimal.Decimal) error {
	var balance decimal.Decimal
	err := tx.GetContext(ctx, &balance, `
		SELECT COALESCE(SUM(amount), 0) FROM client_balance WHERE client_id = $1`, clientID)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to compute client balance").
			Mark(ierr.ErrDatabase)
	}

	if balance.LessThan(due) {
		return ierr.NewError("insufficient balance").
			WithHintf("Client %s balance %s does not cover %s", clientID, balance.String(), due.String()).
			Mark(ierr.ErrInvalidOperation)
	}

	debitID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EVENT)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO client_balance (id, client_id, amount, description, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		debitID, clientID, due.Neg(),
		fmt.Sprintf("Payment for invoice %s", invoiceID),
		types.Metadata{"invoice_id": invoiceID},
		time.Now().UTC())
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to debit client balance").
			Mark(ierr.ErrDatabase)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE invoices SET status = 'paid', paid_at = $2 WHERE id = $1`,
		invoiceID, time.Now().UTC())
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to mark invoice paid").
			Mark(ierr.ErrDatabase)
	}

	b.logger.Infow("invoice settled from balance",
		"invoice_id", invoiceID,
		"client_id", clientID,
		"amount", due.String())
	return nil
}

func (b *crmBilling) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to begin transaction").
			Mark(ierr.ErrDatabase)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to commit transaction").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
