package v1

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/flexprice/paystack-bridge/internal/config"
	ierr "github.com/flexprice/paystack-bridge/internal/errors"
	"github.com/flexprice/paystack-bridge/internal/logger"
	"github.com/flexprice/paystack-bridge/internal/service"
	"github.com/gin-gonic/gin"
)

// CallbackHandler receives the browser returning from hosted checkout
type CallbackHandler struct {
	reconciliation service.ReconciliationService
	config         *config.Configuration
	logger         *logger.Logger
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(reconciliation service.ReconciliationService, cfg *config.Configuration, log *logger.Logger) *CallbackHandler {
	return &CallbackHandler{
		reconciliation: reconciliation,
		config:         cfg,
		logger:         log,
	}
}

// HandlePaystack reconciles the returning charge and sends the browser
// back to the invoice. The redirect happens whatever the outcome; the
// invoice page shows the resulting state. The webhook normally settles
// the charge first, in which case this is a no-op.
func (h *CallbackHandler) HandlePaystack(c *gin.Context) {
	invoiceID := c.Query("invoice_id")
	reference := c.Query("reference")
	if reference == "" {
		reference = c.Query("trxref")
	}

	if invoiceID == "" || reference == "" {
		h.logger.Warnw("callback missing parameters",
			"invoice_id", invoiceID, "reference", reference)
		c.Redirect(http.StatusFound, h.invoiceURL(invoiceID))
		return
	}

	if err := h.reconciliation.ProcessRedirect(c.Request.Context(), invoiceID, reference); err != nil {
		if ierr.IsGatewayRejected(err) || ierr.IsNotFound(err) || ierr.IsValidation(err) {
			h.logger.Warnw("callback charge not credited",
				"invoice_id", invoiceID, "reference", reference, "error", err)
		} else {
			h.logger.Errorw("callback reconciliation failed",
				"invoice_id", invoiceID, "reference", reference, "error", err)
		}
	}

	c.Redirect(http.StatusFound, h.invoiceURL(invoiceID))
}

func (h *CallbackHandler) invoiceURL(invoiceID string) string {
	base := strings.TrimRight(h.config.CRM.InvoiceURL, "/")
	if invoiceID == "" {
		return base
	}
	return base + "/" + url.PathEscape(invoiceID)
}
