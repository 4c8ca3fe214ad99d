package testutil

import (
	"context"

	"github.com/flexprice/paystack-bridge/internal/cache"
	"github.com/flexprice/paystack-bridge/internal/config"
	"github.com/flexprice/paystack-bridge/internal/logger"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory repositories used by service tests
type Stores struct {
	TransactionRepo *InMemoryTransactionStore
	InvoiceRepo     *InMemoryInvoiceStore
}

// BaseServiceTestSuite provides common setup for service layer tests
type BaseServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	cfg        *config.Configuration
	log        *logger.Logger
	stores     Stores
	billing    *MockBilling
	httpClient *MockHTTPClient
	cacheStore cache.Cache
}

// SetupTest initializes fresh dependencies before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.cfg = config.GetDefaultConfig()

	log, err := logger.NewLogger(s.cfg)
	s.Require().NoError(err)
	s.log = log

	s.stores = Stores{
		TransactionRepo: NewInMemoryTransactionStore(),
		InvoiceRepo:     NewInMemoryInvoiceStore(),
	}
	s.billing = NewMockBilling()
	s.httpClient = NewMockHTTPClient()
	s.cacheStore = cache.NewInMemoryCache()
}

// TearDownTest cleans up after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.stores.TransactionRepo.Clear()
	s.stores.InvoiceRepo.Clear()
	s.httpClient.Clear()
	s.cacheStore.Flush(s.ctx)
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.log
}

// GetStores returns the in-memory repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetBilling returns the mock billing surface
func (s *BaseServiceTestSuite) GetBilling() *MockBilling {
	return s.billing
}

// GetHTTPClient returns the mock HTTP client
func (s *BaseServiceTestSuite) GetHTTPClient() *MockHTTPClient {
	return s.httpClient
}

// GetCache returns the test cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cacheStore
}
