package transaction

import (
	"context"

	"github.com/flexprice/paystack-bridge/internal/types"
)

// Repository provides access to transaction storage
type Repository interface {
	Create(ctx context.Context, txn *Transaction) error
	Get(ctx context.Context, id string) (*Transaction, error)
	Update(ctx context.Context, txn *Transaction) error
	GetByReference(ctx context.Context, reference string) (*Transaction, error)
	ExistsByReference(ctx context.Context, reference string) (bool, error)
	GetPendingByInvoiceID(ctx context.Context, invoiceID string) (*Transaction, error)
	List(ctx context.Context, filter *types.TransactionFilter) ([]*Transaction, error)
	Count(ctx context.Context, filter *types.TransactionFilter) (int, error)
}
