package v1

import (
	"net/http"

	"github.com/flexprice/paystack-bridge/internal/api/dto"
	ierr "github.com/flexprice/paystack-bridge/internal/errors"
	"github.com/flexprice/paystack-bridge/internal/logger"
	"github.com/flexprice/paystack-bridge/internal/service"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler creates hosted payment sessions
type CheckoutHandler struct {
	checkout service.CheckoutService
	logger   *logger.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout service.CheckoutService, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, logger: log}
}

// CreateCheckout initializes a gateway checkout for an invoice
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	var req dto.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.checkout.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
