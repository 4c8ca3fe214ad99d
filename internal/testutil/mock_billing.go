package testutil

import (
	"context"
	"sync"

	"github.com/flexprice/paystack-bridge/internal/types"
	"github.com/shopspring/decimal"
)

// FundsCall records one AddFunds invocation
type FundsCall struct {
	ClientID    string
	Amount      decimal.Decimal
	Description string
	Metadata    types.Metadata
}

// MockBilling implements billing.FundsService and invoice.Service and
// records every call so tests can assert on credit counts and ordering.
type MockBilling struct {
	mu sync.Mutex

	FundsCalls     []FundsCall
	PaidInvoices   []string
	BatchPaidFor   []string
	InvoiceTotals  map[string]decimal.Decimal
	AddFundsErr    error
	PayCreditsErr  error
	BatchPayErr    error
	TotalWithTaxFn func(invoiceID string) (decimal.Decimal, error)
}

// NewMockBilling creates a new mock billing surface
func NewMockBilling() *MockBilling {
	return &MockBilling{
		InvoiceTotals: make(map[string]decimal.Decimal),
	}
}

func (m *MockBilling) AddFunds(_ context.Context, clientID string, amount decimal.Decimal, description string, metadata types.Metadata) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddFundsErr != nil {
		return m.AddFundsErr
	}
	m.FundsCalls = append(m.FundsCalls, FundsCall{
		ClientID:    clientID,
		Amount:      amount,
		Description: description,
		Metadata:    metadata,
	})
	return nil
}

func (m *MockBilling) TotalWithTax(_ context.Context, invoiceID string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TotalWithTaxFn != nil {
		return m.TotalWithTaxFn(invoiceID)
	}
	return m.InvoiceTotals[invoiceID], nil
}

func (m *MockBilling) PayWithCredits(_ context.Context, invoiceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PayCreditsErr != nil {
		return m.PayCreditsErr
	}
	m.PaidInvoices = append(m.PaidInvoices, invoiceID)
	return nil
}

func (m *MockBilling) BatchPayWithCredits(_ context.Context, clientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.BatchPayErr != nil {
		return m.BatchPayErr
	}
	m.BatchPaidFor = append(m.BatchPaidFor, clientID)
	return nil
}

// FundsCallCount returns how many times AddFunds succeeded
func (m *MockBilling) FundsCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.FundsCalls)
}
