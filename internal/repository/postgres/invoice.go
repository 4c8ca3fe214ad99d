package postgres

import (
	"context"
	"database/sql"

	"github.com/flexprice/paystack-bridge/internal/domain/invoice"
	ierr "github.com/flexprice/paystack-bridge/internal/errors"
	"github.com/flexprice/paystack-bridge/internal/logger"
	"github.com/jmoiron/sqlx"
)

type invoiceRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewInvoiceRepository creates a read-only view over the CRM invoices table
func NewInvoiceRepository(db *sqlx.DB, log *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: log}
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv := &invoice.Invoice{}
	err := r.db.GetContext(ctx, inv, `
		SELECT id, client_id, serie, nr, buyer_email, currency, total, hash, created_at
		FROM invoices WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("invoice not found").
				WithHintf("Invoice %s does not exist", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch invoice").
			Mark(ierr.ErrDatabase)
	}
	return inv, nil
}
