package webhook

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"testing"

	"github.com/flexprice/paystack-bridge/internal/config"
	"github.com/flexprice/paystack-bridge/internal/logger"
	"github.com/flexprice/paystack-bridge/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T) *Verifier {
	t.Helper()
	cfg := config.GetDefaultConfig()
	log, err := logger.NewLogger(cfg)
	require.NoError(t, err)
	return NewVerifier(cfg, log)
}

func sign(t *testing.T, key string, body []byte) string {
	t.Helper()
	mac := hmac.New(sha512.New, []byte(key))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestInspectRecognizesSignedChargeSuccess(t *testing.T) {
	v := newTestVerifier(t)
	body := []byte(`{
		"event": "charge.success",
		"data": {
			"reference": "ref_123",
			"status": "success",
			"amount": 5000,
			"currency": "NGN",
			"customer": {"email": "buyer@example.com"},
			"metadata": {"invoice_id": "inv_1"}
		}
	}`)

	event, outcome := v.Inspect(http.MethodPost, sign(t, "sk_test_placeholder", body), body)

	require.Equal(t, types.WebhookOutcomeRecognized, outcome)
	require.NotNil(t, event)
	assert.Equal(t, "charge.success", event.Event)
	assert.Equal(t, "ref_123", event.Data.Reference)
	assert.Equal(t, int64(5000), event.Data.Amount)
	assert.Equal(t, "buyer@example.com", event.Data.Customer.Email)
	assert.Equal(t, "inv_1", event.Data.Metadata.InvoiceID)
}

func TestInspectDropsNonPost(t *testing.T) {
	v := newTestVerifier(t)
	body := []byte(`{"event":"charge.success"}`)

	event, outcome := v.Inspect(http.MethodGet, sign(t, "sk_test_placeholder", body), body)
	assert.Nil(t, event)
	assert.Equal(t, types.WebhookOutcomeNotApplicable, outcome)
}

func TestInspectDropsMissingSignature(t *testing.T) {
	v := newTestVerifier(t)

	event, outcome := v.Inspect(http.MethodPost, "", []byte(`{"event":"charge.success"}`))
	assert.Nil(t, event)
	assert.Equal(t, types.WebhookOutcomeNotApplicable, outcome)
}

func TestInspectRejectsBadSignature(t *testing.T) {
	v := newTestVerifier(t)
	body := []byte(`{"event":"charge.success"}`)

	event, outcome := v.Inspect(http.MethodPost, sign(t, "sk_test_wrongkey", body), body)
	assert.Nil(t, event)
	assert.Equal(t, types.WebhookOutcomeInvalidSignature, outcome)
}

func TestInspectSignatureCoversExactBytes(t *testing.T) {
	v := newTestVerifier(t)
	body := []byte(`{"event":"charge.success","data":{"reference":"ref_1"}}`)
	// same JSON, different whitespace
	tampered := []byte(`{"event": "charge.success", "data": {"reference": "ref_1"}}`)

	_, outcome := v.Inspect(http.MethodPost, sign(t, "sk_test_placeholder", body), tampered)
	assert.Equal(t, types.WebhookOutcomeInvalidSignature, outcome)
}

func TestInspectIgnoresOtherEvents(t *testing.T) {
	v := newTestVerifier(t)
	body := []byte(`{"event":"subscription.create","data":{"reference":"ref_9"}}`)

	event, outcome := v.Inspect(http.MethodPost, sign(t, "sk_test_placeholder", body), body)
	assert.Nil(t, event)
	assert.Equal(t, types.WebhookOutcomeUnhandledEvent, outcome)
}

func TestInspectIgnoresMalformedBody(t *testing.T) {
	v := newTestVerifier(t)
	body := []byte(`not json at all`)

	event, outcome := v.Inspect(http.MethodPost, sign(t, "sk_test_placeholder", body), body)
	assert.Nil(t, event)
	assert.Equal(t, types.WebhookOutcomeUnhandledEvent, outcome)
}

func TestInspectAcceptsNumericInvoiceID(t *testing.T) {
	v := newTestVerifier(t)
	body := []byte(`{
		"event": "charge.success",
		"data": {
			"reference": "ref_42",
			"metadata": {"invoice_id": 42}
		}
	}`)

	event, outcome := v.Inspect(http.MethodPost, sign(t, "sk_test_placeholder", body), body)
	require.Equal(t, types.WebhookOutcomeRecognized, outcome)
	assert.Equal(t, "42", event.Data.Metadata.InvoiceID)
}
