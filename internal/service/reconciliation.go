package service

import (
	"context"
	"fmt"

	"github.com/flexprice/paystack-bridge/internal/cache"
	"github.com/flexprice/paystack-bridge/internal/domain/transaction"
	ierr "github.com/flexprice/paystack-bridge/internal/errors"
	"github.com/flexprice/paystack-bridge/internal/paystack"
	"github.com/flexprice/paystack-bridge/internal/types"
	"github.com/shopspring/decimal"
)

// MismatchMessage is recorded on a transaction whose verified charge does
// not belong to the invoice it claims to pay
const MismatchMessage = "Transaction doesn't match Paystack records"

// ReconciliationService settles pending transactions against the
// gateway's authoritative record. A webhook or a redirect only tells us a
// payment might have happened; nothing is credited until the charge is
// re-fetched from the API and cross-checked against the invoice.
type ReconciliationService interface {
	// ProcessEvent handles a verified charge.success webhook event
	ProcessEvent(ctx context.Context, event *paystack.Event) error
	// ProcessRedirect handles the browser returning from hosted checkout.
	// It is idempotent: a reference that was already settled succeeds.
	ProcessRedirect(ctx context.Context, invoiceID, reference string) error
}

type reconciliationService struct {
	ServiceParams
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(params ServiceParams) ReconciliationService {
	return &reconciliationService{ServiceParams: params}
}

func (s *reconciliationService) ProcessEvent(ctx context.Context, event *paystack.Event) error {
	reference := event.Data.Reference
	if reference == "" {
		return ierr.NewError("event has no transaction reference").
			Mark(ierr.ErrValidation)
	}

	claimed, err := s.claimedTransaction(ctx, reference)
	if err != nil {
		return err
	}
	if claimed != nil {
		if claimed.Status == types.TransactionStatusProcessed {
			return ierr.NewError("transaction already processed").
				WithHintf("Reference %s has already been reconciled", reference).
				Mark(ierr.ErrAlreadyExists)
		}
		// the claim holder died before the funds landed; pick up where
		// it left off
		return s.finishSettlement(ctx, claimed)
	}

	invoiceID := event.Data.Metadata.InvoiceID
	if invoiceID == "" {
		return ierr.NewError("event metadata has no invoice id").
			WithHint("Charges initialized outside the bridge cannot be reconciled").
			Mark(ierr.ErrValidation)
	}

	txn, err := s.TransactionRepo.GetPendingByInvoiceID(ctx, invoiceID)
	if err != nil {
		return err
	}

	return s.reconcile(ctx, txn, reference)
}

func (s *reconciliationService) ProcessRedirect(ctx context.Context, invoiceID, reference string) error {
	if reference == "" {
		return ierr.NewError("missing transaction reference").
			Mark(ierr.ErrValidation)
	}

	claimed, err := s.claimedTransaction(ctx, reference)
	if err != nil {
		return err
	}
	if claimed != nil {
		if claimed.Status == types.TransactionStatusProcessed {
			// the webhook usually wins the race; the browser landing
			// after that is a success, not a duplicate
			return nil
		}
		return s.finishSettlement(ctx, claimed)
	}

	txn, err := s.TransactionRepo.GetPendingByInvoiceID(ctx, invoiceID)
	if err != nil {
		return err
	}

	return s.reconcile(ctx, txn, reference)
}

// claimedTransaction returns the transaction that already holds the
// reference, or nil when the reference is unclaimed
func (s *reconciliationService) claimedTransaction(ctx context.Context, reference string) (*transaction.Transaction, error) {
	txn, err := s.TransactionRepo.GetByReference(ctx, reference)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return txn, nil
}

// reconcile verifies the charge with the gateway, cross-checks it
// against the invoice, claims the reference, and applies the funds. The
// unique index on the stored reference makes the claim the serialization
// point: two concurrent deliveries of the same reference cannot both get
// past it. Crediting happens after the claim, so a crediting failure
// leaves the transaction settling and a later delivery resumes it rather
// than treating it as a replay.
func (s *reconciliationService) reconcile(ctx context.Context, txn *transaction.Transaction, reference string) error {
	charge, err := s.Paystack.Transactions.Verify(ctx, reference)
	if err != nil {
		return err
	}

	if charge.Error != "" {
		return s.markFailed(ctx, txn, "", charge.Error)
	}
	if charge.Data == nil {
		return s.markFailed(ctx, txn, "", "verification returned no charge data")
	}
	if charge.Data.Status != types.GatewayStatusSuccess {
		reason := charge.Data.GatewayResponse
		if reason == "" {
			reason = fmt.Sprintf("charge status is %s", charge.Data.Status)
		}
		return s.markFailed(ctx, txn, charge.Data.Status, reason)
	}

	inv, err := s.InvoiceRepo.Get(ctx, txn.InvoiceID)
	if err != nil {
		return err
	}

	if charge.Data.Customer.Email != inv.BuyerEmail || charge.Data.Metadata.InvoiceID != inv.ID {
		s.Logger.Warnw("verified charge does not match invoice",
			"transaction_id", txn.ID,
			"invoice_id", inv.ID,
			"reference", reference)
		return s.markFailed(ctx, txn, charge.Data.Status, MismatchMessage)
	}

	amount := decimal.NewFromInt(charge.Data.Amount).Div(decimal.NewFromInt(100))
	txn.MarkSettling(reference, amount, charge.Data.Currency)

	if err := s.TransactionRepo.Update(ctx, txn); err != nil {
		if ierr.IsAlreadyExists(err) {
			s.Logger.Infow("reference claimed concurrently", "reference", reference)
			return err
		}
		return err
	}

	return s.finishSettlement(ctx, txn)
}

// fundsCreditedKey marks a settling transaction whose balance credit has
// landed, so a resumed settlement never credits twice
const fundsCreditedKey = "funds_credited"

// finishSettlement applies the funds for a claimed charge and marks the
// transaction processed. Every step is safe to re-run: the credit is
// gated on the persisted marker and the invoice payments are no-ops on
// paid invoices.
func (s *reconciliationService) finishSettlement(ctx context.Context, txn *transaction.Transaction) error {
	reference := ""
	if txn.Reference != nil {
		reference = *txn.Reference
	}

	if txn.Metadata == nil {
		txn.Metadata = types.Metadata{}
	}
	if txn.Metadata[fundsCreditedKey] != "true" {
		description := fmt.Sprintf("Paystack transaction %s", reference)
		metadata := types.Metadata{
			"invoice_id": txn.InvoiceID,
			"reference":  reference,
		}
		if err := s.FundsService.AddFunds(ctx, txn.ClientID, txn.Amount, description, metadata); err != nil {
			return err
		}
		txn.Metadata[fundsCreditedKey] = "true"
		if err := s.TransactionRepo.Update(ctx, txn); err != nil {
			return err
		}
	}

	if err := s.InvoiceService.PayWithCredits(ctx, txn.InvoiceID); err != nil {
		return err
	}
	if err := s.InvoiceService.BatchPayWithCredits(ctx, txn.ClientID); err != nil {
		return err
	}

	txn.MarkProcessed()
	if err := s.TransactionRepo.Update(ctx, txn); err != nil {
		return err
	}

	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixTransaction, txn.ID))
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixInvoice, txn.InvoiceID))

	s.Logger.Infow("transaction reconciled",
		"transaction_id", txn.ID,
		"invoice_id", txn.InvoiceID,
		"reference", reference,
		"amount", txn.Amount.String(),
		"currency", txn.Currency)
	return nil
}

// markFailed persists the failure before surfacing it so a transaction
// never fails invisibly
func (s *reconciliationService) markFailed(ctx context.Context, txn *transaction.Transaction, gatewayStatus, reason string) error {
	txn.MarkFailed(gatewayStatus, reason)
	if err := s.TransactionRepo.Update(ctx, txn); err != nil {
		s.Logger.Errorw("failed to persist failed transaction",
			"transaction_id", txn.ID, "error", err)
		return err
	}

	s.Logger.Errorw("transaction failed reconciliation",
		"transaction_id", txn.ID,
		"invoice_id", txn.InvoiceID,
		"reason", reason)

	return ierr.NewError("transaction could not be reconciled").
		WithHint(reason).
		WithReportableDetails(map[string]any{
			"transaction_id": txn.ID,
			"invoice_id":     txn.InvoiceID,
		}).
		Mark(ierr.ErrGatewayRejected)
}
