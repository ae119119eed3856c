package workforce

import (
	"time"

	"github.com/branchpos/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeResponse is the roster representation of an employee
type EmployeeResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Role        string          `json:"role"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	IsActive    bool            `json:"is_active"`
	ClockStatus string          `json:"clock_status"`
}

// TimeEntryResponse is the shift record representation
type TimeEntryResponse struct {
	ID            uuid.UUID       `json:"id"`
	EmployeeID    uuid.UUID       `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	ClockIn       time.Time       `json:"clock_in"`
	ClockOut      *time.Time      `json:"clock_out,omitempty"`
	BreakStart    *time.Time      `json:"break_start,omitempty"`
	BreakEnd      *time.Time      `json:"break_end,omitempty"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	Status        string          `json:"status"`
}

// ToTimeEntryResponse converts a time entry to its response
// representation
func ToTimeEntryResponse(e *workforce.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		ID:            e.ID,
		EmployeeID:    e.EmployeeID,
		EmployeeName:  e.EmployeeName,
		ClockIn:       e.ClockIn,
		ClockOut:      e.ClockOut,
		BreakStart:    e.BreakStart,
		BreakEnd:      e.BreakEnd,
		TotalHours:    e.TotalHours,
		RegularHours:  e.RegularHours,
		OvertimeHours: e.OvertimeHours,
		Status:        e.Status.String(),
	}
}

// ToTimeEntryResponses converts a time entry slice to response
// representations
func ToTimeEntryResponses(entries []*workforce.TimeEntry) []TimeEntryResponse {
	out := make([]TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToTimeEntryResponse(e))
	}
	return out
}

// PayrollEntryResponse is one employee's payroll line
type PayrollEntryResponse struct {
	EmployeeID    uuid.UUID       `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	Role          string          `json:"role"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	GrossPay      decimal.Decimal `json:"gross_pay"`
	Taxes         decimal.Decimal `json:"taxes"`
	NetPay        decimal.Decimal `json:"net_pay"`
}

// PayrollPeriodResponse is a generated payroll run
type PayrollPeriodResponse struct {
	ID          uuid.UUID              `json:"id"`
	PeriodStart time.Time              `json:"period_start"`
	PeriodEnd   time.Time              `json:"period_end"`
	Entries     []PayrollEntryResponse `json:"entries"`
	TotalGross  decimal.Decimal        `json:"total_gross"`
	TotalTaxes  decimal.Decimal        `json:"total_taxes"`
	TotalNet    decimal.Decimal        `json:"total_net"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// ToPayrollPeriodResponse converts a payroll run to its response
// representation
func ToPayrollPeriodResponse(p *workforce.PayrollPeriod) PayrollPeriodResponse {
	entries := make([]PayrollEntryResponse, 0, len(p.Entries))
	for _, e := range p.Entries {
		entries = append(entries, PayrollEntryResponse{
			EmployeeID:    e.EmployeeID,
			EmployeeName:  e.EmployeeName,
			Role:          e.Role.String(),
			HourlyRate:    e.HourlyRate,
			RegularHours:  e.RegularHours,
			OvertimeHours: e.OvertimeHours,
			GrossPay:      e.GrossPay,
			Taxes:         e.Taxes,
			NetPay:        e.NetPay,
		})
	}
	return PayrollPeriodResponse{
		ID:          p.ID,
		PeriodStart: p.PeriodStart,
		PeriodEnd:   p.PeriodEnd,
		Entries:     entries,
		TotalGross:  p.TotalGross,
		TotalTaxes:  p.TotalTaxes,
		TotalNet:    p.TotalNet,
		GeneratedAt: p.GeneratedAt,
	}
}
