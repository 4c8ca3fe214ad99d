package invoice

import (
	"context"

	"github.com/shopspring/decimal"
)

// Service is the CRM invoice surface the bridge drives during
// reconciliation. PayWithCredits settles one invoice from the client's
// balance; BatchPayWithCredits sweeps the remainder across the client's
// other unpaid invoices.
type Service interface {
	TotalWithTax(ctx context.Context, invoiceID string) (decimal.Decimal, error)
	PayWithCredits(ctx context.Context, invoiceID string) error
	BatchPayWithCredits(ctx context.Context, clientID string) error
}
