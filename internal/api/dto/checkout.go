package dto

import (
	"github.com/flexprice/paystack-bridge/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateCheckoutRequest starts a hosted payment for an invoice
type CreateCheckoutRequest struct {
	InvoiceID string `json:"invoice_id" validate:"required"`
	// CallbackURL overrides the configured redirect target
	CallbackURL string `json:"callback_url,omitempty" validate:"omitempty,url"`
}

func (r *CreateCheckoutRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// CheckoutResponse carries the hosted payment page for the browser
type CheckoutResponse struct {
	ID               string          `json:"id"`
	TransactionID    string          `json:"transaction_id"`
	InvoiceID        string          `json:"invoice_id"`
	AuthorizationURL string          `json:"authorization_url"`
	AccessCode       string          `json:"access_code"`
	Reference        string          `json:"reference"`
	// PublicKey lets the caller render an inline payment widget for
	// the active mode without a config round trip
	PublicKey        string          `json:"public_key"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
}
