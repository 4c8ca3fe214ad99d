package service

import (
	"testing"
	"time"

	"github.com/flexprice/paystack-bridge/internal/domain/transaction"
	ierr "github.com/flexprice/paystack-bridge/internal/errors"
	"github.com/flexprice/paystack-bridge/internal/testutil"
	"github.com/flexprice/paystack-bridge/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service TransactionService
}

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceSuite))
}

func (s *TransactionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	s.service = NewTransactionService(ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		Cache:           s.GetCache(),
		TransactionRepo: s.GetStores().TransactionRepo,
		InvoiceRepo:     s.GetStores().InvoiceRepo,
		InvoiceService:  s.GetBilling(),
		FundsService:    s.GetBilling(),
	})
}

func (s *TransactionServiceSuite) seedTransaction(invoiceID string, status types.TransactionStatus, offset time.Duration) *transaction.Transaction {
	now := time.Now().UTC().Add(offset)
	txn := &transaction.Transaction{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TRANSACTION),
		InvoiceID: invoiceID,
		ClientID:  "client_1",
		Amount:    decimal.NewFromInt(50),
		Currency:  "NGN",
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Require().NoError(s.GetStores().TransactionRepo.Create(s.GetContext(), txn))
	return txn
}

func (s *TransactionServiceSuite) TestGet() {
	txn := s.seedTransaction("inv_1", types.TransactionStatusPending, 0)

	resp, err := s.service.Get(s.GetContext(), txn.ID)
	s.Require().NoError(err)
	s.Equal(txn.ID, resp.ID)
	s.Equal("inv_1", resp.InvoiceID)
}

func (s *TransactionServiceSuite) TestGetNotFound() {
	_, err := s.service.Get(s.GetContext(), "txn_missing")
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *TransactionServiceSuite) TestGetUsesCache() {
	txn := s.seedTransaction("inv_1", types.TransactionStatusPending, 0)

	_, err := s.service.Get(s.GetContext(), txn.ID)
	s.Require().NoError(err)

	// remove from the store; the cached copy should still serve
	s.Require().NoError(s.GetStores().TransactionRepo.Delete(s.GetContext(), txn.ID))

	resp, err := s.service.Get(s.GetContext(), txn.ID)
	s.Require().NoError(err)
	s.Equal(txn.ID, resp.ID)
}

func (s *TransactionServiceSuite) TestListFiltersByStatus() {
	s.seedTransaction("inv_1", types.TransactionStatusPending, -2*time.Minute)
	s.seedTransaction("inv_2", types.TransactionStatusProcessed, -time.Minute)
	s.seedTransaction("inv_3", types.TransactionStatusProcessed, 0)

	resp, err := s.service.List(s.GetContext(), &types.TransactionFilter{
		QueryFilter: types.NewDefaultQueryFilter(),
		Status:      lo.ToPtr(types.TransactionStatusProcessed),
	})
	s.Require().NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(2, resp.Pagination.Total)
	// newest first
	s.Equal("inv_3", resp.Items[0].InvoiceID)
}

func (s *TransactionServiceSuite) TestListPaginates() {
	for i := 0; i < 5; i++ {
		s.seedTransaction("inv_1", types.TransactionStatusPending, time.Duration(i)*time.Second)
	}

	resp, err := s.service.List(s.GetContext(), &types.TransactionFilter{
		QueryFilter: &types.QueryFilter{
			Limit:  lo.ToPtr(2),
			Offset: lo.ToPtr(2),
		},
	})
	s.Require().NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(5, resp.Pagination.Total)
	s.Equal(2, resp.Pagination.Limit)
	s.Equal(2, resp.Pagination.Offset)
}

func (s *TransactionServiceSuite) TestListRejectsNegativeLimit() {
	_, err := s.service.List(s.GetContext(), &types.TransactionFilter{
		QueryFilter: &types.QueryFilter{Limit: lo.ToPtr(-1)},
	})
	s.Require().Error(err)
}
