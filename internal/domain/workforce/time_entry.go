package workforce

import (
	"context"
	"time"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClockStatus represents where an employee sits in the clock cycle
type ClockStatus string

const (
	ClockStatusNotClockedIn ClockStatus = "not_clocked_in"
	ClockStatusClockedIn    ClockStatus = "clocked_in"
	ClockStatusOnBreak      ClockStatus = "on_break"
	ClockStatusClockedOut   ClockStatus = "clocked_out"
)

// String returns the string representation of ClockStatus
func (s ClockStatus) String() string {
	return string(s)
}

// regularHoursCap is the per-shift threshold above which hours count as
// overtime
var regularHoursCap = decimal.NewFromInt(8)

// TimeEntry is one employee's shift record. ClockOut freezes the hour
// split; a closed entry never changes.
type TimeEntry struct {
	shared.BaseEntity
	Branch        branch.Key
	EmployeeID    uuid.UUID
	EmployeeName  string
	ClockIn       time.Time
	ClockOut      *time.Time
	BreakStart    *time.Time
	BreakEnd      *time.Time
	TotalHours    decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	Status        ClockStatus
}

// NewTimeEntry opens a shift at the given instant
func NewTimeEntry(key branch.Key, employee *Employee, now time.Time) (*TimeEntry, error) {
	if key.IsZero() {
		return nil, shared.ErrNoActiveBranch
	}
	if employee == nil {
		return nil, shared.ErrNoOperator
	}

	return &TimeEntry{
		BaseEntity:   shared.NewBaseEntityAt(now),
		Branch:       key,
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		ClockIn:      now,
		Status:       ClockStatusClockedIn,
	}, nil
}

// IsOpen reports whether the shift is still running
func (e *TimeEntry) IsOpen() bool {
	return e.Status == ClockStatusClockedIn || e.Status == ClockStatusOnBreak
}

// StartBreak moves a clocked-in shift onto break
func (e *TimeEntry) StartBreak(now time.Time) error {
	if e.Status != ClockStatusClockedIn {
		return shared.ErrInvalidState
	}
	e.BreakStart = &now
	e.BreakEnd = nil
	e.Status = ClockStatusOnBreak
	e.UpdatedAt = now
	return nil
}

// EndBreak returns a shift from break to clocked in
func (e *TimeEntry) EndBreak(now time.Time) error {
	if e.Status != ClockStatusOnBreak {
		return shared.ErrInvalidState
	}
	e.BreakEnd = &now
	e.Status = ClockStatusClockedIn
	e.UpdatedAt = now
	return nil
}

// Close ends the shift and freezes the hour split. Total hours run from
// clock-in to clock-out; the break window is recorded but not deducted.
// The first eight hours are regular, the remainder overtime.
func (e *TimeEntry) Close(now time.Time) error {
	if !e.IsOpen() {
		return shared.ErrNotClockedIn
	}
	if e.Status == ClockStatusOnBreak {
		e.BreakEnd = &now
	}

	e.ClockOut = &now
	e.TotalHours = hoursBetween(e.ClockIn, now)
	if e.TotalHours.GreaterThan(regularHoursCap) {
		e.RegularHours = regularHoursCap
		e.OvertimeHours = e.TotalHours.Sub(regularHoursCap)
	} else {
		e.RegularHours = e.TotalHours
		e.OvertimeHours = decimal.Zero
	}
	e.Status = ClockStatusClockedOut
	e.UpdatedAt = now
	return nil
}

// hoursBetween returns the elapsed hours from a to b as a decimal
func hoursBetween(a, b time.Time) decimal.Decimal {
	minutes := b.Sub(a).Minutes()
	return decimal.NewFromFloat(minutes).Div(decimal.NewFromInt(60)).Round(4)
}

// TimeEntryArchive is the append-only persistence sink for closed and
// open shift records
type TimeEntryArchive interface {
	Append(ctx context.Context, entry *TimeEntry) error
	Update(ctx context.Context, entry *TimeEntry) error
}
