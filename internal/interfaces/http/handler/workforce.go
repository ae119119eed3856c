package handler

import (
	"time"

	appworkforce "github.com/branchpos/backend/internal/application/workforce"
	"github.com/branchpos/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WorkforceHandler handles the time clock and payroll endpoints
type WorkforceHandler struct {
	BaseHandler
	timeClock *appworkforce.TimeClockService
	payroll   *appworkforce.PayrollService
}

// NewWorkforceHandler creates a new WorkforceHandler
func NewWorkforceHandler(timeClock *appworkforce.TimeClockService, payroll *appworkforce.PayrollService) *WorkforceHandler {
	return &WorkforceHandler{
		timeClock: timeClock,
		payroll:   payroll,
	}
}

// Roster returns the branch staff with their live clock status
// GET /api/v1/workforce/roster
func (h *WorkforceHandler) Roster(c *gin.Context) {
	resp, err := h.timeClock.Roster(c.Request.Context(), middleware.GetBranchKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *WorkforceHandler) employeeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("employeeId"))
	if err != nil {
		h.BadRequest(c, "Invalid employee id")
		return uuid.Nil, false
	}
	return id, true
}

// ClockIn opens a shift for an employee
// POST /api/v1/workforce/employees/:employeeId/clock-in
func (h *WorkforceHandler) ClockIn(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	resp, err := h.timeClock.ClockIn(c.Request.Context(), middleware.GetBranchKey(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ClockOut closes the employee's open shift and splits hours
// POST /api/v1/workforce/employees/:employeeId/clock-out
func (h *WorkforceHandler) ClockOut(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	resp, err := h.timeClock.ClockOut(c.Request.Context(), middleware.GetBranchKey(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// StartBreak records the start of a break on the open shift
// POST /api/v1/workforce/employees/:employeeId/break/start
func (h *WorkforceHandler) StartBreak(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	resp, err := h.timeClock.StartBreak(c.Request.Context(), middleware.GetBranchKey(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// EndBreak records the end of a break on the open shift
// POST /api/v1/workforce/employees/:employeeId/break/end
func (h *WorkforceHandler) EndBreak(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	resp, err := h.timeClock.EndBreak(c.Request.Context(), middleware.GetBranchKey(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListEntries returns the branch's shift records
// GET /api/v1/workforce/time-entries
func (h *WorkforceHandler) ListEntries(c *gin.Context) {
	resp, err := h.timeClock.ListEntries(c.Request.Context(), middleware.GetBranchKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

type generatePayrollRequest struct {
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

// GeneratePayroll runs payroll for closed shifts in a period
// POST /api/v1/workforce/payroll
func (h *WorkforceHandler) GeneratePayroll(c *gin.Context) {
	var req generatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	start, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		h.BadRequest(c, "Invalid period_start, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		h.BadRequest(c, "Invalid period_end, expected YYYY-MM-DD")
		return
	}

	resp, err := h.payroll.Generate(c.Request.Context(), middleware.GetBranchKey(c), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
