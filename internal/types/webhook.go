package types

// WebhookOutcome classifies what the webhook verifier decided about an
// inbound request. Unauthenticated drops and authenticated-but-unhandled
// events both end the request quietly, but the distinction is kept so
// callers and tests can tell them apart.
type WebhookOutcome string

const (
	// WebhookOutcomeNotApplicable means the request was not a POST or did
	// not carry the provider signature header at all
	WebhookOutcomeNotApplicable WebhookOutcome = "not_applicable"
	// WebhookOutcomeInvalidSignature means the signature header did not
	// match the HMAC of the raw body
	WebhookOutcomeInvalidSignature WebhookOutcome = "invalid_signature"
	// WebhookOutcomeUnhandledEvent means the event authenticated but its
	// type is not one the bridge processes
	WebhookOutcomeUnhandledEvent WebhookOutcome = "unhandled_event"
	// WebhookOutcomeRecognized means a charge.success event authenticated
	// and parsed and should be reconciled
	WebhookOutcomeRecognized WebhookOutcome = "recognized"
)

func (o WebhookOutcome) String() string {
	return string(o)
}
