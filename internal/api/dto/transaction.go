package dto

import (
	"github.com/flexprice/paystack-bridge/internal/domain/transaction"
	"github.com/flexprice/paystack-bridge/internal/types"
)

// TransactionResponse is the API shape of a stored transaction
type TransactionResponse struct {
	*transaction.Transaction
}

// ListTransactionsResponse is a paginated list of transactions
type ListTransactionsResponse struct {
	Items      []*TransactionResponse   `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}
