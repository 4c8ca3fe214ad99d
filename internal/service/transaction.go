package service

import (
	"context"

	"github.com/flexprice/paystack-bridge/internal/api/dto"
	"github.com/flexprice/paystack-bridge/internal/cache"
	"github.com/flexprice/paystack-bridge/internal/domain/transaction"
	"github.com/flexprice/paystack-bridge/internal/types"
)

// TransactionService exposes stored transactions for operators
type TransactionService interface {
	Get(ctx context.Context, id string) (*dto.TransactionResponse, error)
	List(ctx context.Context, filter *types.TransactionFilter) (*dto.ListTransactionsResponse, error)
}

type transactionService struct {
	ServiceParams
}

// NewTransactionService creates a new transaction service
func NewTransactionService(params ServiceParams) TransactionService {
	return &transactionService{ServiceParams: params}
}

func (s *transactionService) Get(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	key := cache.GenerateKey(cache.PrefixTransaction, id)
	if cached, found := s.Cache.Get(ctx, key); found {
		if txn, ok := cached.(*transaction.Transaction); ok {
			return &dto.TransactionResponse{Transaction: txn}, nil
		}
	}

	txn, err := s.TransactionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, key, txn, cache.DefaultExpiration)
	return &dto.TransactionResponse{Transaction: txn}, nil
}

func (s *transactionService) List(ctx context.Context, filter *types.TransactionFilter) (*dto.ListTransactionsResponse, error) {
	if filter == nil {
		filter = &types.TransactionFilter{QueryFilter: types.NewDefaultQueryFilter()}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	transactions, err := s.TransactionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.TransactionRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.TransactionResponse, len(transactions))
	for i, txn := range transactions {
		items[i] = &dto.TransactionResponse{Transaction: txn}
	}

	return &dto.ListTransactionsResponse{
		Items:      items,
		Pagination: types.NewPaginationResponse(total, filter.GetLimit(), filter.GetOffset()),
	}, nil
}
