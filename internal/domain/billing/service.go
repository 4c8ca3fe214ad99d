package billing

import (
	"context"

	"github.com/flexprice/paystack-bridge/internal/types"
	"github.com/shopspring/decimal"
)

// FundsService credits money onto a client's CRM balance. AddFunds must
// be called at most once per gateway reference; the reconciliation flow
// guarantees that by gating on the stored reference before calling it.
type FundsService interface {
	AddFunds(ctx context.Context, clientID string, amount decimal.Decimal, description string, metadata types.Metadata) error
}
