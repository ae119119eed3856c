package workforce

import (
	"time"

	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants for the workforce context
const (
	AggregateTypeTimeEntry     = "TimeEntry"
	AggregateTypePayrollPeriod = "PayrollPeriod"
)

// Workforce event type constants
const (
	EventTypeEmployeeClockedIn  = "EmployeeClockedIn"
	EventTypeEmployeeClockedOut = "EmployeeClockedOut"
	EventTypePayrollGenerated   = "PayrollGenerated"
)

// EmployeeClockedInEvent is raised when a shift opens
type EmployeeClockedInEvent struct {
	shared.BaseDomainEvent
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	ClockIn      time.Time `json:"clock_in"`
}

// NewEmployeeClockedInEvent creates a new EmployeeClockedInEvent
func NewEmployeeClockedInEvent(e *TimeEntry) *EmployeeClockedInEvent {
	return &EmployeeClockedInEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeClockedIn, AggregateTypeTimeEntry, e.ID, e.Branch.String()),
		EmployeeID:      e.EmployeeID,
		EmployeeName:    e.EmployeeName,
		ClockIn:         e.ClockIn,
	}
}

// EventType returns the event type name
func (e *EmployeeClockedInEvent) EventType() string {
	return EventTypeEmployeeClockedIn
}

// EmployeeClockedOutEvent is raised when a shift closes with its frozen
// hour split
type EmployeeClockedOutEvent struct {
	shared.BaseDomainEvent
	EmployeeID    uuid.UUID       `json:"employee_id"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
}

// NewEmployeeClockedOutEvent creates a new EmployeeClockedOutEvent
func NewEmployeeClockedOutEvent(e *TimeEntry) *EmployeeClockedOutEvent {
	return &EmployeeClockedOutEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeClockedOut, AggregateTypeTimeEntry, e.ID, e.Branch.String()),
		EmployeeID:      e.EmployeeID,
		TotalHours:      e.TotalHours,
		RegularHours:    e.RegularHours,
		OvertimeHours:   e.OvertimeHours,
	}
}

// EventType returns the event type name
func (e *EmployeeClockedOutEvent) EventType() string {
	return EventTypeEmployeeClockedOut
}

// PayrollGeneratedEvent is raised when a payroll run is archived
type PayrollGeneratedEvent struct {
	shared.BaseDomainEvent
	PeriodStart time.Time       `json:"period_start"`
	PeriodEnd   time.Time       `json:"period_end"`
	TotalGross  decimal.Decimal `json:"total_gross"`
	TotalNet    decimal.Decimal `json:"total_net"`
	EntryCount  int             `json:"entry_count"`
}

// NewPayrollGeneratedEvent creates a new PayrollGeneratedEvent
func NewPayrollGeneratedEvent(p *PayrollPeriod) *PayrollGeneratedEvent {
	return &PayrollGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePayrollGenerated, AggregateTypePayrollPeriod, p.ID, p.Branch.String()),
		PeriodStart:     p.PeriodStart,
		PeriodEnd:       p.PeriodEnd,
		TotalGross:      p.TotalGross,
		TotalNet:        p.TotalNet,
		EntryCount:      len(p.Entries),
	}
}

// EventType returns the event type name
func (e *PayrollGeneratedEvent) EventType() string {
	return EventTypePayrollGenerated
}
