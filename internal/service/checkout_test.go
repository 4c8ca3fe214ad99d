package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/flexprice/paystack-bridge/internal/api/dto"
	"github.com/flexprice/paystack-bridge/internal/domain/invoice"
	ierr "github.com/flexprice/paystack-bridge/internal/errors"
	"github.com/flexprice/paystack-bridge/internal/paystack"
	"github.com/flexprice/paystack-bridge/internal/testutil"
	"github.com/flexprice/paystack-bridge/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CheckoutServiceSuite struct {
	testutil.BaseServiceTestSuite
	service CheckoutService
}

func TestCheckoutService(t *testing.T) {
	suite.Run(t, new(CheckoutServiceSuite))
}

func (s *CheckoutServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	cfg := s.GetConfig()
	cfg.CRM.CallbackURL = "https://billing.example.com/callback/paystack"

	client, err := paystack.NewClient(cfg, s.GetHTTPClient(), s.GetLogger())
	s.Require().NoError(err)

	s.service = NewCheckoutService(ServiceParams{
		Logger:          s.GetLogger(),
		Config:          cfg,
		Cache:           s.GetCache(),
		TransactionRepo: s.GetStores().TransactionRepo,
		InvoiceRepo:     s.GetStores().InvoiceRepo,
		InvoiceService:  s.GetBilling(),
		FundsService:    s.GetBilling(),
		Paystack:        client,
	})
}

func (s *CheckoutServiceSuite) seedInvoice(total decimal.Decimal) *invoice.Invoice {
	inv := &invoice.Invoice{
		ID:         "inv_1",
		ClientID:   "client_1",
		BuyerEmail: "buyer@example.com",
		Currency:   "NGN",
		Total:      total,
		CreatedAt:  time.Now().UTC(),
	}
	s.Require().NoError(s.GetStores().InvoiceRepo.Add(s.GetContext(), inv))
	s.GetBilling().InvoiceTotals[inv.ID] = total
	return inv
}

func (s *CheckoutServiceSuite) registerInitialize(body string) {
	s.GetHTTPClient().RegisterResponse("/transaction/initialize", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(body),
	})
}

func (s *CheckoutServiceSuite) TestCreateCheckout() {
	inv := s.seedInvoice(decimal.NewFromFloat(50.00))
	s.registerInitialize(`{
		"status": true,
		"message": "Authorization URL created",
		"data": {
			"authorization_url": "https://checkout.paystack.com/abc123",
			"access_code": "abc123",
			"reference": "ref_new"
		}
	}`)

	resp, err := s.service.Create(s.GetContext(), &dto.CreateCheckoutRequest{InvoiceID: inv.ID})
	s.Require().NoError(err)
	s.Equal("https://checkout.paystack.com/abc123", resp.AuthorizationURL)
	s.Equal("ref_new", resp.Reference)
	s.Equal("pk_test_placeholder", resp.PublicKey)
	s.True(resp.Amount.Equal(decimal.NewFromInt(50)))

	// the charge goes out in minor units with the invoice id attached,
	// under a generated short reference
	requests := s.GetHTTPClient().Requests()
	s.Require().Len(requests, 1)
	body := string(requests[0].Body)
	s.Contains(body, `"reference":"PS`)
	s.Contains(body, `"amount":5000`)
	s.Contains(body, `"email":"buyer@example.com"`)
	s.Contains(body, `"invoice_id":"inv_1"`)
	s.Contains(body, "invoice_id=inv_1")

	// a pending transaction is recorded for the webhook to find
	stored, err := s.GetStores().TransactionRepo.GetPendingByInvoiceID(s.GetContext(), inv.ID)
	s.Require().NoError(err)
	s.Equal(resp.TransactionID, stored.ID)
	s.Equal(types.TransactionStatusPending, stored.Status)
	s.Nil(stored.Reference)
	s.True(stored.Amount.Equal(decimal.NewFromInt(50)))
}

func (s *CheckoutServiceSuite) TestCreateCheckoutRoundsToMinorUnits() {
	inv := s.seedInvoice(decimal.NewFromFloat(19.995))
	s.registerInitialize(`{
		"status": true,
		"message": "Authorization URL created",
		"data": {"authorization_url": "https://checkout.paystack.com/x", "access_code": "x", "reference": "ref_x"}
	}`)

	_, err := s.service.Create(s.GetContext(), &dto.CreateCheckoutRequest{InvoiceID: inv.ID})
	s.Require().NoError(err)

	requests := s.GetHTTPClient().Requests()
	s.Require().Len(requests, 1)
	s.Contains(string(requests[0].Body), `"amount":2000`)
}

func (s *CheckoutServiceSuite) TestCreateCheckoutRejectsZeroTotal() {
	inv := s.seedInvoice(decimal.Zero)

	_, err := s.service.Create(s.GetContext(), &dto.CreateCheckoutRequest{InvoiceID: inv.ID})
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *CheckoutServiceSuite) TestCreateCheckoutUnknownInvoice() {
	_, err := s.service.Create(s.GetContext(), &dto.CreateCheckoutRequest{InvoiceID: "inv_missing"})
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CheckoutServiceSuite) TestCreateCheckoutGatewayRejection() {
	inv := s.seedInvoice(decimal.NewFromInt(50))
	s.registerInitialize(`{"status":false,"message":"Invalid key"}`)

	_, err := s.service.Create(s.GetContext(), &dto.CreateCheckoutRequest{InvoiceID: inv.ID})
	s.Require().Error(err)
	s.True(ierr.IsGatewayRejected(err))

	// no transaction is recorded for a checkout that never opened
	_, err = s.GetStores().TransactionRepo.GetPendingByInvoiceID(s.GetContext(), inv.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *CheckoutServiceSuite) TestCreateCheckoutValidatesRequest() {
	_, err := s.service.Create(s.GetContext(), &dto.CreateCheckoutRequest{})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}
