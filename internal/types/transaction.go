package types

import (
	"fmt"

	"github.com/samber/lo"
)

// TransactionStatus tracks the lifecycle of a gateway transaction record.
// A transaction starts out pending when a charge attempt is initiated,
// moves to settling when a verified charge claims it, and reaches a
// terminal state once the funds have been applied or the charge failed.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusSettling  TransactionStatus = "settling"
	TransactionStatusProcessed TransactionStatus = "processed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

func (s TransactionStatus) String() string {
	return string(s)
}

func (s TransactionStatus) Validate() error {
	allowed := []TransactionStatus{
		TransactionStatusPending,
		TransactionStatusSettling,
		TransactionStatusProcessed,
		TransactionStatusFailed,
	}
	if !lo.Contains(allowed, s) {
		return fmt.Errorf("invalid transaction status: %s", s)
	}
	return nil
}

// GatewayStatusSuccess is the status Paystack reports for a successful charge
const GatewayStatusSuccess = "success"

// TransactionFilter represents the filter for listing transactions
type TransactionFilter struct {
	*QueryFilter

	TransactionIDs []string           `form:"transaction_ids"`
	InvoiceID      string             `form:"invoice_id"`
	Status         *TransactionStatus `form:"status"`
	Currency       string             `form:"currency"`
}

// NewNoLimitTransactionFilter creates a new transaction filter with no limit
func NewNoLimitTransactionFilter() *TransactionFilter {
	return &TransactionFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

// Validate validates the transaction filter
func (f *TransactionFilter) Validate() error {
	if f == nil {
		return nil
	}
	if f.Status != nil {
		if err := f.Status.Validate(); err != nil {
			return err
		}
	}
	return f.QueryFilter.Validate()
}

// GetLimit implements BaseFilter interface
func (f *TransactionFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *TransactionFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// IsUnlimited returns true if the filter has no limit
func (f *TransactionFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
