package paystack

import (
	"bytes"
	"encoding/json"
)

// Result is the normalized outcome of a gateway call. Status and Message
// mirror the provider envelope; Data carries the raw payload for typed
// decoding by the resource wrappers. Error is set locally whenever the
// call could not complete or the provider rejected it, so callers can
// branch on a single field regardless of where the failure happened.
type Result struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"-"`
}

// Ok reports whether the call completed and the provider accepted it
func (r *Result) Ok() bool {
	return r != nil && r.Error == "" && r.Status
}

// Customer is the customer block embedded in charge payloads
type Customer struct {
	Email        string `json:"email"`
	CustomerCode string `json:"customer_code,omitempty"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
}

// ChargeMetadata is the metadata object attached to a charge. Paystack
// echoes back whatever was sent at initialization, so invoice_id may come
// back as a string or a number depending on who created the transaction,
// and the whole object may be a JSON-encoded string on some channels.
type ChargeMetadata struct {
	InvoiceID string `json:"invoice_id"`
}

func (m *ChargeMetadata) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" || string(data) == `""` {
		return nil
	}

	// string-encoded metadata: unwrap and retry
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return err
		}
		return m.UnmarshalJSON([]byte(inner))
	}

	var raw struct {
		InvoiceID json.RawMessage `json:"invoice_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.InvoiceID) == 0 || string(raw.InvoiceID) == "null" {
		return nil
	}

	if raw.InvoiceID[0] == '"' {
		var s string
		if err := json.Unmarshal(raw.InvoiceID, &s); err != nil {
			return err
		}
		m.InvoiceID = s
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(raw.InvoiceID, &n); err != nil {
		return err
	}
	m.InvoiceID = n.String()
	return nil
}

// ChargeData is the charge payload shared by webhook events and the
// verify endpoint. Amount is in the minor unit of the currency.
type ChargeData struct {
	ID              int64          `json:"id"`
	Status          string         `json:"status"`
	Reference       string         `json:"reference"`
	Amount          int64          `json:"amount"`
	Currency        string         `json:"currency"`
	GatewayResponse string         `json:"gateway_response"`
	PaidAt          string         `json:"paid_at"`
	Channel         string         `json:"channel"`
	Customer        Customer       `json:"customer"`
	Metadata        ChargeMetadata `json:"metadata"`
}

// Event is the envelope Paystack POSTs to the webhook endpoint
type Event struct {
	Event string     `json:"event"`
	Data  ChargeData `json:"data"`
}

// EventChargeSuccess is the only event type the bridge acts on
const EventChargeSuccess = "charge.success"

// ChargeResult is a typed view over a verify or charge call
type ChargeResult struct {
	Message string
	Error   string
	Data    *ChargeData
}

// InitializeData is returned by transaction initialization
type InitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// InitializeResult is a typed view over an initialize call
type InitializeResult struct {
	Message string
	Error   string
	Data    *InitializeData
}

// InitializeRequest describes a hosted checkout to create
type InitializeRequest struct {
	Reference   string
	Amount      int64
	Email       string
	Currency    string
	Plan        string
	CallbackURL string
	Metadata    map[string]interface{}
}

// ListParams carries pagination for list verbs
type ListParams struct {
	PerPage int
	Page    int
}

func (p *ListParams) payload() map[string]interface{} {
	payload := map[string]interface{}{}
	if p == nil {
		return payload
	}
	if p.PerPage > 0 {
		payload["perPage"] = p.PerPage
	}
	if p.Page > 0 {
		payload["page"] = p.Page
	}
	return payload
}
