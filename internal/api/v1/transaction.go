package v1

import (
	"net/http"
	"strconv"

	ierr "github.com/flexprice/paystack-bridge/internal/errors"
	"github.com/flexprice/paystack-bridge/internal/logger"
	"github.com/flexprice/paystack-bridge/internal/service"
	"github.com/flexprice/paystack-bridge/internal/types"
	"github.com/gin-gonic/gin"
)

// TransactionHandler exposes stored transactions
type TransactionHandler struct {
	transactions service.TransactionService
	logger       *logger.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactions service.TransactionService, log *logger.Logger) *TransactionHandler {
	return &TransactionHandler{transactions: transactions, logger: log}
}

// GetTransaction returns one transaction by id
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	resp, err := h.transactions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListTransactions returns a filtered page of transactions
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	filter, err := parseTransactionFilter(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.transactions.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func parseTransactionFilter(c *gin.Context) (*types.TransactionFilter, error) {
	filter := &types.TransactionFilter{
		QueryFilter: types.NewDefaultQueryFilter(),
	}

	filter.InvoiceID = c.Query("invoice_id")
	filter.Currency = c.Query("currency")

	if status := c.Query("status"); status != "" {
		s := types.TransactionStatus(status)
		if err := s.Validate(); err != nil {
			return nil, err
		}
		filter.Status = &s
	}

	if limit := c.Query("limit"); limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("limit must be an integer").
				Mark(ierr.ErrValidation)
		}
		filter.QueryFilter.Limit = &parsed
	}

	if offset := c.Query("offset"); offset != "" {
		parsed, err := strconv.Atoi(offset)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("offset must be an integer").
				Mark(ierr.ErrValidation)
		}
		filter.QueryFilter.Offset = &parsed
	}

	return filter, nil
}
