package v1

import (
	"io"
	"net/http"

	ierr "github.com/flexprice/paystack-bridge/internal/errors"
	"github.com/flexprice/paystack-bridge/internal/logger"
	"github.com/flexprice/paystack-bridge/internal/service"
	"github.com/flexprice/paystack-bridge/internal/types"
	"github.com/flexprice/paystack-bridge/internal/webhook"
	"github.com/gin-gonic/gin"
)

// WebhookHandler receives gateway event deliveries
type WebhookHandler struct {
	verifier       *webhook.Verifier
	reconciliation service.ReconciliationService
	logger         *logger.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(verifier *webhook.Verifier, reconciliation service.ReconciliationService, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifier:       verifier,
		reconciliation: reconciliation,
		logger:         log,
	}
}

// HandlePaystack processes one delivery. The provider retries anything
// that is not a 2xx, so every classified outcome is acknowledged with
// 200 even when nothing was processed. Only infrastructure failures
// return 5xx; those are the deliveries we want retried.
func (h *WebhookHandler) HandlePaystack(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Errorw("failed to read webhook body", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	event, outcome := h.verifier.Inspect(c.Request.Method, c.GetHeader(webhook.SignatureHeader), body)
	if outcome != types.WebhookOutcomeRecognized {
		h.logger.Infow("webhook dropped", "outcome", outcome)
		c.Status(http.StatusOK)
		return
	}

	if err := h.reconciliation.ProcessEvent(c.Request.Context(), event); err != nil {
		switch {
		case ierr.IsAlreadyExists(err):
			h.logger.Infow("webhook delivery was already processed",
				"reference", event.Data.Reference)
		case ierr.IsGatewayRejected(err), ierr.IsValidation(err), ierr.IsNotFound(err):
			// terminal outcome recorded on the transaction; retrying the
			// delivery would not change it
			h.logger.Warnw("webhook event not credited",
				"reference", event.Data.Reference, "error", err)
		default:
			h.logger.Errorw("webhook processing failed",
				"reference", event.Data.Reference, "error", err)
			c.Status(http.StatusInternalServerError)
			return
		}
	}

	c.Status(http.StatusOK)
}
