package handler

import (
	appendofday "github.com/branchpos/backend/internal/application/endofday"
	"github.com/branchpos/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EndOfDayHandler handles the close-of-day reconciliation endpoints
type EndOfDayHandler struct {
	BaseHandler
	reconciler *appendofday.ReconcilerService
}

// NewEndOfDayHandler creates a new EndOfDayHandler
func NewEndOfDayHandler(reconciler *appendofday.ReconcilerService) *EndOfDayHandler {
	return &EndOfDayHandler{reconciler: reconciler}
}

// Status returns where the branch is in the close-of-day flow
// GET /api/v1/endofday/status
func (h *EndOfDayHandler) Status(c *gin.Context) {
	resp, err := h.reconciler.Status(c.Request.Context(), middleware.GetBranchKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

type openingFloatRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// SetOpeningFloat sets the drawer's starting cash for the day
// PUT /api/v1/endofday/opening-float
func (h *EndOfDayHandler) SetOpeningFloat(c *gin.Context) {
	var req openingFloatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.reconciler.SetOpeningFloat(c.Request.Context(), middleware.GetBranchKey(c), req.Amount); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RecordPettyCash records a mid-day drawer adjustment
// POST /api/v1/endofday/petty-cash
func (h *EndOfDayHandler) RecordPettyCash(c *gin.Context) {
	var req appendofday.PettyCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.reconciler.RecordPettyCash(c.Request.Context(), middleware.GetBranchKey(c), req, middleware.GetUsername(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// BeginStockCheck opens a stock check session seeded from inventory
// POST /api/v1/endofday/stock-check
func (h *EndOfDayHandler) BeginStockCheck(c *gin.Context) {
	resp, err := h.reconciler.BeginStockCheck(c.Request.Context(), middleware.GetBranchKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

type recordCountRequest struct {
	Actual decimal.Decimal `json:"actual" binding:"required"`
	Notes  string          `json:"notes"`
}

// RecordCount records the physical count for one item
// PUT /api/v1/endofday/stock-check/items/:itemId
func (h *EndOfDayHandler) RecordCount(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item id")
		return
	}

	var req recordCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reconciler.RecordCount(c.Request.Context(), middleware.GetBranchKey(c), itemID, req.Actual, req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CompleteStockCheck freezes the counts and writes them back to
// inventory
// POST /api/v1/endofday/stock-check/complete
func (h *EndOfDayHandler) CompleteStockCheck(c *gin.Context) {
	resp, err := h.reconciler.CompleteStockCheck(c.Request.Context(), middleware.GetBranchKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

type beginCashCountRequest struct {
	OpeningFloat *decimal.Decimal `json:"opening_float"`
}

// BeginCashCount opens the drawer reconciliation with the expected
// balance frozen from today's figures
// POST /api/v1/endofday/cash-count
func (h *EndOfDayHandler) BeginCashCount(c *gin.Context) {
	var req beginCashCountRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	resp, err := h.reconciler.BeginCashCount(c.Request.Context(), middleware.GetBranchKey(c), req.OpeningFloat)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// RecordCashCount records the physical drawer count on the open
// reconciliation
// PUT /api/v1/endofday/cash-count
func (h *EndOfDayHandler) RecordCashCount(c *gin.Context) {
	var req appendofday.CashCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reconciler.RecordCashCount(c.Request.Context(), middleware.GetBranchKey(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

type finalizeCashCountRequest struct {
	Notes string `json:"notes"`
}

// FinalizeCashCount freezes the reconciliation as verified or
// discrepancy
// POST /api/v1/endofday/cash-count/finalize
func (h *EndOfDayHandler) FinalizeCashCount(c *gin.Context) {
	var req finalizeCashCountRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	resp, err := h.reconciler.FinalizeCashCount(c.Request.Context(), middleware.GetBranchKey(c), req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GenerateReport archives the close-of-day report and resets the flow
// POST /api/v1/endofday/report
func (h *EndOfDayHandler) GenerateReport(c *gin.Context) {
	resp, err := h.reconciler.GenerateReport(c.Request.Context(), middleware.GetBranchKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListReports returns archived reports for the branch
// GET /api/v1/endofday/reports
func (h *EndOfDayHandler) ListReports(c *gin.Context) {
	resp, err := h.reconciler.ListReports(c.Request.Context(), middleware.GetBranchKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
