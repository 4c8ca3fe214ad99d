package transaction

import (
	"time"

	ierr "github.com/flexprice/paystack-bridge/internal/errors"
	"github.com/flexprice/paystack-bridge/internal/types"
	"github.com/shopspring/decimal"
)

// Transaction is one payment attempt against an invoice. Reference holds
// the gateway reference and stays empty until a verified charge claims
// the transaction; the unique index on it guarantees a reference is
// claimed by at most one transaction, and only the claim owner proceeds
// to credit funds.
type Transaction struct {
	ID            string                  `db:"id" json:"id"`
	InvoiceID     string                  `db:"invoice_id" json:"invoice_id"`
	ClientID      string                  `db:"client_id" json:"client_id"`
	Reference     *string                 `db:"reference" json:"reference,omitempty"`
	Amount        decimal.Decimal         `db:"amount" json:"amount"`
	Currency      string                  `db:"currency" json:"currency"`
	Status        types.TransactionStatus `db:"status" json:"status"`
	GatewayStatus string                  `db:"gateway_status" json:"gateway_status,omitempty"`
	ErrorMessage  *string                 `db:"error_message" json:"error_message,omitempty"`
	Metadata      types.Metadata          `db:"metadata" json:"metadata,omitempty"`
	CreatedAt     time.Time               `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time               `db:"updated_at" json:"updated_at"`
}

// Validate checks invariants before persistence
func (t *Transaction) Validate() error {
	if t.ID == "" {
		return ierr.NewError("transaction id is required").
			Mark(ierr.ErrValidation)
	}
	if t.InvoiceID == "" {
		return ierr.NewError("invoice id is required").
			WithHint("Every transaction must belong to an invoice").
			Mark(ierr.ErrValidation)
	}
	if t.Amount.IsNegative() {
		return ierr.NewError("amount cannot be negative").
			WithReportableDetails(map[string]any{"amount": t.Amount.String()}).
			Mark(ierr.ErrValidation)
	}
	if err := t.Status.Validate(); err != nil {
		return err
	}
	return nil
}

// MarkSettling claims the verified charge for this transaction. Funds
// have not been applied yet; a settling transaction that never reaches
// processed is resumed on the next delivery of its reference.
func (t *Transaction) MarkSettling(reference string, amount decimal.Decimal, currency string) {
	t.Reference = &reference
	t.Amount = amount
	t.Currency = currency
	t.Status = types.TransactionStatusSettling
	t.GatewayStatus = types.GatewayStatusSuccess
	t.ErrorMessage = nil
	t.UpdatedAt = time.Now().UTC()
}

// MarkProcessed records that the funds for the claimed charge landed
func (t *Transaction) MarkProcessed() {
	t.Status = types.TransactionStatusProcessed
	t.UpdatedAt = time.Now().UTC()
}

// MarkFailed records a terminal failure with the reason shown to operators
func (t *Transaction) MarkFailed(gatewayStatus, reason string) {
	t.Status = types.TransactionStatusFailed
	t.GatewayStatus = gatewayStatus
	t.ErrorMessage = &reason
	t.UpdatedAt = time.Now().UTC()
}
