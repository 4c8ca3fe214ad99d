package testutil

import (
	"context"

	"github.com/flexprice/paystack-bridge/internal/domain/transaction"
	ierr "github.com/flexprice/paystack-bridge/internal/errors"
	"github.com/flexprice/paystack-bridge/internal/types"
	"github.com/samber/lo"
)

// InMemoryTransactionStore implements transaction.Repository with the
// same uniqueness semantics as the postgres implementation: at most one
// stored transaction may carry any given reference.
type InMemoryTransactionStore struct {
	*InMemoryStore[*transaction.Transaction]
}

// NewInMemoryTransactionStore creates a new in-memory transaction store
func NewInMemoryTransactionStore() *InMemoryTransactionStore {
	return &InMemoryTransactionStore{
		InMemoryStore: NewInMemoryStore[*transaction.Transaction](),
	}
}

func (s *InMemoryTransactionStore) Create(ctx context.Context, txn *transaction.Transaction) error {
	if err := s.checkReference(ctx, txn); err != nil {
		return err
	}
	if err := s.InMemoryStore.Create(ctx, txn.ID, txn); err != nil {
		return ierr.WithError(err).
			WithHint("Transaction already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (s *InMemoryTransactionStore) Get(ctx context.Context, id string) (*transaction.Transaction, error) {
	txn, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("transaction not found").
			WithHintf("Transaction %s does not exist", id).
			Mark(ierr.ErrNotFound)
	}
	return txn, nil
}

func (s *InMemoryTransactionStore) Update(ctx context.Context, txn *transaction.Transaction) error {
	if err := s.checkReference(ctx, txn); err != nil {
		return err
	}
	if err := s.InMemoryStore.Update(ctx, txn.ID, txn); err != nil {
		return ierr.NewError("transaction not found").
			WithHintf("Transaction %s does not exist", txn.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryTransactionStore) GetByReference(ctx context.Context, reference string) (*transaction.Transaction, error) {
	matches, _ := s.InMemoryStore.List(ctx, nil, func(_ context.Context, item *transaction.Transaction, _ interface{}) bool {
		return item.Reference != nil && *item.Reference == reference
	}, nil)
	if len(matches) == 0 {
		return nil, ierr.NewError("transaction not found").
			WithHintf("No transaction with reference %s", reference).
			Mark(ierr.ErrNotFound)
	}
	return matches[0], nil
}

func (s *InMemoryTransactionStore) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	count, _ := s.InMemoryStore.Count(ctx, nil, func(_ context.Context, item *transaction.Transaction, _ interface{}) bool {
		return item.Reference != nil && *item.Reference == reference
	})
	return count > 0, nil
}

func (s *InMemoryTransactionStore) GetPendingByInvoiceID(ctx context.Context, invoiceID string) (*transaction.Transaction, error) {
	matches, _ := s.InMemoryStore.List(ctx, nil, func(_ context.Context, item *transaction.Transaction, _ interface{}) bool {
		return item.InvoiceID == invoiceID && item.Status == types.TransactionStatusPending
	}, func(i, j *transaction.Transaction) bool {
		return i.CreatedAt.After(j.CreatedAt)
	})
	if len(matches) == 0 {
		return nil, ierr.NewError("no pending transaction for invoice").
			WithHintf("Invoice %s has no pending transaction", invoiceID).
			Mark(ierr.ErrNotFound)
	}
	return matches[0], nil
}

func (s *InMemoryTransactionStore) List(ctx context.Context, filter *types.TransactionFilter) ([]*transaction.Transaction, error) {
	return s.InMemoryStore.List(ctx, filter, transactionFilterFn, func(i, j *transaction.Transaction) bool {
		return i.CreatedAt.After(j.CreatedAt)
	})
}

func (s *InMemoryTransactionStore) Count(ctx context.Context, filter *types.TransactionFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, transactionFilterFn)
}

// checkReference rejects a write that would duplicate another
// transaction's reference
func (s *InMemoryTransactionStore) checkReference(ctx context.Context, txn *transaction.Transaction) error {
	if txn.Reference == nil {
		return nil
	}
	matches, _ := s.InMemoryStore.List(ctx, nil, func(_ context.Context, item *transaction.Transaction, _ interface{}) bool {
		return item.ID != txn.ID && item.Reference != nil && *item.Reference == *txn.Reference
	}, nil)
	if len(matches) > 0 {
		return ierr.NewError("duplicate reference").
			WithHint("This reference has already been settled").
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func transactionFilterFn(_ context.Context, item *transaction.Transaction, filter interface{}) bool {
	f, ok := filter.(*types.TransactionFilter)
	if !ok || f == nil {
		return true
	}
	if f.InvoiceID != "" && item.InvoiceID != f.InvoiceID {
		return false
	}
	if f.Status != nil && item.Status != *f.Status {
		return false
	}
	if f.Currency != "" && item.Currency != f.Currency {
		return false
	}
	if len(f.TransactionIDs) > 0 && !lo.Contains(f.TransactionIDs, item.ID) {
		return false
	}
	return true
}
