package webhook

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/flexprice/paystack-bridge/internal/config"
	"github.com/flexprice/paystack-bridge/internal/logger"
	"github.com/flexprice/paystack-bridge/internal/paystack"
	"github.com/flexprice/paystack-bridge/internal/types"
)

// SignatureHeader carries the HMAC Paystack computes over the raw body
const SignatureHeader = "X-Paystack-Signature"

// Verifier authenticates incoming webhook deliveries. The signature is
// an HMAC-SHA512 of the exact raw request body keyed with the account's
// secret key, hex encoded. Verification must run on the bytes as
// received; re-serializing the JSON first would break it.
type Verifier struct {
	secretKey []byte
	logger    *logger.Logger
}

// NewVerifier creates a Verifier keyed with the active secret key
func NewVerifier(cfg *config.Configuration, log *logger.Logger) *Verifier {
	return &Verifier{
		secretKey: []byte(cfg.Paystack.ActiveSecretKey()),
		logger:    log,
	}
}

// Signature computes the expected hex signature for a raw body
func (v *Verifier) Signature(body []byte) string {
	mac := hmac.New(sha512.New, v.secretKey)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Inspect classifies a delivery and, when it is a recognized charge
// event, returns the decoded payload. Anything other than a recognized
// outcome must still be acknowledged upstream so the provider does not
// retry forever; the outcome only decides whether processing happens.
func (v *Verifier) Inspect(method, signature string, body []byte) (*paystack.Event, types.WebhookOutcome) {
	if method != http.MethodPost || signature == "" {
		return nil, types.WebhookOutcomeNotApplicable
	}

	expected := v.Signature(body)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		v.logger.Warnw("webhook signature mismatch", "body_size", len(body))
		return nil, types.WebhookOutcomeInvalidSignature
	}

	event := &paystack.Event{}
	if err := json.Unmarshal(body, event); err != nil {
		v.logger.Warnw("webhook body is not valid json", "error", err)
		return nil, types.WebhookOutcomeUnhandledEvent
	}

	if event.Event != paystack.EventChargeSuccess {
		v.logger.Debugw("ignoring webhook event", "event", event.Event)
		return nil, types.WebhookOutcomeUnhandledEvent
	}

	return event, types.WebhookOutcomeRecognized
}
