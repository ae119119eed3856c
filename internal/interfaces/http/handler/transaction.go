package handler

import (
	"strconv"
	"time"

	"github.com/branchpos/backend/internal/application/pos"
	"github.com/branchpos/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler handles checkout and the transaction ledger
type TransactionHandler struct {
	BaseHandler
	transactions *pos.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactions *pos.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// Commit finalizes the pending cart into a transaction
// POST /api/v1/pos/transactions
func (h *TransactionHandler) Commit(c *gin.Context) {
	resp, err := h.transactions.Commit(
		c.Request.Context(),
		middleware.GetBranchKey(c),
		middleware.GetOperatorID(c),
		middleware.GetUsername(c),
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListRecent returns the branch's latest transactions, newest first
// GET /api/v1/pos/transactions?limit=10
func (h *TransactionHandler) ListRecent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	resp, err := h.transactions.ListRecent(c.Request.Context(), middleware.GetBranchKey(c), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one transaction by id
// GET /api/v1/pos/transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction id")
		return
	}

	resp, err := h.transactions.GetByID(c.Request.Context(), middleware.GetBranchKey(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel cancels a transaction that has not completed fulfillment
// POST /api/v1/pos/transactions/:id/cancel
func (h *TransactionHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction id")
		return
	}

	resp, err := h.transactions.Cancel(c.Request.Context(), middleware.GetBranchKey(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DailySummary returns aggregate sales for one business day
// GET /api/v1/pos/summary?date=2026-03-15
func (h *TransactionHandler) DailySummary(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	resp, err := h.transactions.DailySummary(c.Request.Context(), middleware.GetBranchKey(c), day)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
