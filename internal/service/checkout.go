package service

import (
	"context"
	"net/url"
	"time"

	"github.com/flexprice/paystack-bridge/internal/api/dto"
	"github.com/flexprice/paystack-bridge/internal/domain/transaction"
	ierr "github.com/flexprice/paystack-bridge/internal/errors"
	"github.com/flexprice/paystack-bridge/internal/paystack"
	"github.com/flexprice/paystack-bridge/internal/types"
	"github.com/shopspring/decimal"
)

// CheckoutService creates hosted payment sessions for invoices
type CheckoutService interface {
	Create(ctx context.Context, req *dto.CreateCheckoutRequest) (*dto.CheckoutResponse, error)
}

type checkoutService struct {
	ServiceParams
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(params ServiceParams) CheckoutService {
	return &checkoutService{ServiceParams: params}
}

// Create initializes a gateway checkout for the invoice's outstanding
// total and records a pending transaction for it. The invoice id rides
// along in the charge metadata and in the redirect URL so both the
// webhook and the returning browser can find their way back to the
// transaction. Amounts go to the gateway in the minor unit.
func (s *checkoutService) Create(ctx context.Context, req *dto.CreateCheckoutRequest) (*dto.CheckoutResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}

	amount, err := s.InvoiceService.TotalWithTax(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, ierr.NewError("invoice has nothing to pay").
			WithHintf("Invoice %s total is %s", inv.ID, amount.String()).
			Mark(ierr.ErrInvalidOperation)
	}

	minorUnits := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	reference, err := s.freshReference(ctx)
	if err != nil {
		return nil, err
	}

	init, err := s.Paystack.Transactions.Initialize(ctx, &paystack.InitializeRequest{
		Reference:   reference,
		Amount:      minorUnits,
		Email:       inv.BuyerEmail,
		Currency:    inv.Currency,
		CallbackURL: s.callbackURL(req.CallbackURL, inv.ID),
		Metadata: map[string]interface{}{
			"invoice_id": inv.ID,
			"title":      inv.Title(),
		},
	})
	if err != nil {
		return nil, err
	}
	if init.Error != "" || init.Data == nil {
		reason := init.Error
		if reason == "" {
			reason = "initialization returned no checkout data"
		}
		s.Logger.Errorw("checkout initialization rejected",
			"invoice_id", inv.ID, "reason", reason)
		return nil, ierr.NewError("checkout could not be initialized").
			WithHint(reason).
			Mark(ierr.ErrGatewayRejected)
	}

	now := time.Now().UTC()
	txn := &transaction.Transaction{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TRANSACTION),
		InvoiceID: inv.ID,
		ClientID:  inv.ClientID,
		Amount:    amount,
		Currency:  inv.Currency,
		Status:    types.TransactionStatusPending,
		Metadata: types.Metadata{
			"init_reference": init.Data.Reference,
			"access_code":    init.Data.AccessCode,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}
	if err := s.TransactionRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	s.Logger.Infow("checkout created",
		"transaction_id", txn.ID,
		"invoice_id", inv.ID,
		"reference", init.Data.Reference,
		"amount", amount.String())

	return &dto.CheckoutResponse{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CHECKOUT),
		TransactionID:    txn.ID,
		InvoiceID:        inv.ID,
		AuthorizationURL: init.Data.AuthorizationURL,
		AccessCode:       init.Data.AccessCode,
		Reference:        init.Data.Reference,
		PublicKey:        s.Config.Paystack.ActivePublicKey(),
		Amount:           amount,
		Currency:         inv.Currency,
	}, nil
}

// freshReference generates a short human-facing checkout reference that
// no earlier transaction has claimed. Short ids can collide, so the
// candidate is checked against the settled references before use.
func (s *checkoutService) freshReference(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 3; attempt++ {
		reference := types.GenerateShortIDWithPrefix("PS")
		if reference == "" {
			continue
		}
		exists, err := s.TransactionRepo.ExistsByReference(ctx, reference)
		if err != nil {
			return "", err
		}
		if !exists {
			return reference, nil
		}
	}
	return "", ierr.NewError("could not generate an unused checkout reference").
		Mark(ierr.ErrInternal)
}

// callbackURL picks the redirect target and tags it with the invoice id
func (s *checkoutService) callbackURL(override, invoiceID string) string {
	base := override
	if base == "" {
		base = s.Config.CRM.CallbackURL
	}
	if base == "" {
		return ""
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return base
	}
	query := parsed.Query()
	query.Set("invoice_id", invoiceID)
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
