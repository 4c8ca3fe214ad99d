package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/flexprice/paystack-bridge/internal/domain/transaction"
	ierr "github.com/flexprice/paystack-bridge/internal/errors"
	"github.com/flexprice/paystack-bridge/internal/logger"
	"github.com/flexprice/paystack-bridge/internal/types"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

type transactionRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewTransactionRepository creates a postgres backed transaction repository
func NewTransactionRepository(db *sqlx.DB, log *logger.Logger) transaction.Repository {
	return &transactionRepository{db: db, logger: log}
}

func (r *transactionRepository) Create(ctx context.Context, txn *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, invoice_id, client_id, reference, amount, currency,
			status, gateway_status, error_message, metadata, created_at, updated_at
		) VALUES (
			:id, :invoice_id, :client_id, :reference, :amount, :currency,
			:status, :gateway_status, :error_message, :metadata, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, txn); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A transaction with this reference already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create transaction").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *transactionRepository) Get(ctx context.Context, id string) (*transaction.Transaction, error) {
	txn := &transaction.Transaction{}
	err := r.db.GetContext(ctx, txn, `SELECT * FROM transactions WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("transaction not found").
				WithHintf("Transaction %s does not exist", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch transaction").
			Mark(ierr.ErrDatabase)
	}
	return txn, nil
}

// Update persists the transaction. The partial unique index on reference
// turns a concurrent settlement of the same reference into a conflict
// here instead of a double credit.
func (r *transactionRepository) Update(ctx context.Context, txn *transaction.Transaction) error {
	query := `
		UPDATE transactions SET
			reference = :reference,
			amount = :amount,
			currency = :currency,
			status = :status,
			gateway_status = :gateway_status,
			error_message = :error_message,
			metadata = :metadata,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, txn)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("This reference has already been settled").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to update transaction").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return ierr.NewError("transaction not found").
			WithHintf("Transaction %s does not exist", txn.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *transactionRepository) GetByReference(ctx context.Context, reference string) (*transaction.Transaction, error) {
	txn := &transaction.Transaction{}
	err := r.db.GetContext(ctx, txn, `SELECT * FROM transactions WHERE reference = $1`, reference)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("transaction not found").
				WithHintf("No transaction with reference %s", reference).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch transaction").
			Mark(ierr.ErrDatabase)
	}
	return txn, nil
}

func (r *transactionRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM transactions WHERE reference = $1)`, reference)
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to check transaction reference").
			Mark(ierr.ErrDatabase)
	}
	return exists, nil
}

// GetPendingByInvoiceID returns the most recent pending transaction for
// the invoice, which is the one a checkout created for it.
func (r *transactionRepository) GetPendingByInvoiceID(ctx context.Context, invoiceID string) (*transaction.Transaction, error) {
	txn := &transaction.Transaction{}
	err := r.db.GetContext(ctx, txn, `
		SELECT * FROM transactions
		WHERE invoice_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 1`,
		invoiceID, types.TransactionStatusPending)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("no pending transaction for invoice").
				WithHintf("Invoice %s has no pending transaction", invoiceID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch pending transaction").
			Mark(ierr.ErrDatabase)
	}
	return txn, nil
}

func (r *transactionRepository) List(ctx context.Context, filter *types.TransactionFilter) ([]*transaction.Transaction, error) {
	if filter == nil {
		filter = types.NewNoLimitTransactionFilter()
	}
	where, args := buildTransactionWhere(filter)

	query := "SELECT * FROM transactions" + where + " ORDER BY created_at DESC"
	if !filter.IsUnlimited() {
		args = append(args, filter.GetLimit())
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.GetOffset())
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	transactions := []*transaction.Transaction{}
	if err := r.db.SelectContext(ctx, &transactions, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list transactions").
			Mark(ierr.ErrDatabase)
	}
	return transactions, nil
}

func (r *transactionRepository) Count(ctx context.Context, filter *types.TransactionFilter) (int, error) {
	where, args := buildTransactionWhere(filter)

	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM transactions"+where, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count transactions").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func buildTransactionWhere(filter *types.TransactionFilter) (string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}

	add := func(clause string, value interface{}) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter == nil {
		return "", args
	}
	if filter.InvoiceID != "" {
		add("invoice_id = $%d", filter.InvoiceID)
	}
	if filter.Status != nil {
		add("status = $%d", *filter.Status)
	}
	if filter.Currency != "" {
		add("currency = $%d", filter.Currency)
	}
	if len(filter.TransactionIDs) > 0 {
		add("id = ANY($%d)", pq.Array(filter.TransactionIDs))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if ierr.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return false
}
