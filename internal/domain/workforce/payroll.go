package workforce

import (
	"context"
	"time"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayrollRates carries the multipliers a payroll run is computed with
type PayrollRates struct {
	OvertimeMultiplier decimal.Decimal
	TaxRate            decimal.Decimal
}

// DefaultPayrollRates returns time-and-a-half overtime and a flat 25%
// withholding
func DefaultPayrollRates() PayrollRates {
	return PayrollRates{
		OvertimeMultiplier: decimal.RequireFromString("1.5"),
		TaxRate:            decimal.RequireFromString("0.25"),
	}
}

// PayrollEntry is one employee's line in a payroll run. All derived
// amounts are frozen at generation time.
type PayrollEntry struct {
	EmployeeID    uuid.UUID
	EmployeeName  string
	Role          Role
	HourlyRate    decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	GrossPay      decimal.Decimal
	Taxes         decimal.Decimal
	NetPay        decimal.Decimal
}

// PayrollPeriod is an immutable payroll run over a date range for one
// branch. Regenerating over the same closed entries yields identical
// amounts; only the run id and timestamp differ.
type PayrollPeriod struct {
	shared.BaseEntity
	Branch      branch.Key
	PeriodStart time.Time
	PeriodEnd   time.Time
	Entries     []PayrollEntry
	TotalGross  decimal.Decimal
	TotalTaxes  decimal.Decimal
	TotalNet    decimal.Decimal
	GeneratedAt time.Time
}

// GeneratePayroll aggregates closed time entries per employee and prices
// them: gross = regular*rate + overtime*rate*mult, taxes = gross*taxRate,
// net = gross - taxes. The window compares calendar dates, so both the
// start and end dates are inclusive regardless of the time of day the
// boundaries carry. Open shifts are skipped. Entry order follows the
// roster order of employees.
func GeneratePayroll(key branch.Key, employees []*Employee, entries []*TimeEntry, start, end time.Time, rates PayrollRates, now time.Time) (*PayrollPeriod, error) {
	if key.IsZero() {
		return nil, shared.ErrNoActiveBranch
	}
	if end.Before(start) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end precedes period start")
	}

	startDay := shared.DateOf(start)
	endDay := shared.DateOf(end)
	regular := make(map[uuid.UUID]decimal.Decimal)
	overtime := make(map[uuid.UUID]decimal.Decimal)
	for _, te := range entries {
		if te.Status != ClockStatusClockedOut || te.ClockOut == nil {
			continue
		}
		day := shared.DateOf(te.ClockIn)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		regular[te.EmployeeID] = regular[te.EmployeeID].Add(te.RegularHours)
		overtime[te.EmployeeID] = overtime[te.EmployeeID].Add(te.OvertimeHours)
	}

	period := &PayrollPeriod{
		BaseEntity:  shared.NewBaseEntityAt(now),
		Branch:      key,
		PeriodStart: start,
		PeriodEnd:   end,
		Entries:     make([]PayrollEntry, 0, len(employees)),
		GeneratedAt: now,
	}

	for _, emp := range employees {
		reg, hasReg := regular[emp.ID]
		ot := overtime[emp.ID]
		if !hasReg && ot.IsZero() {
			continue
		}

		gross := reg.Mul(emp.HourlyRate).Add(ot.Mul(emp.HourlyRate).Mul(rates.OvertimeMultiplier)).Round(2)
		taxes := gross.Mul(rates.TaxRate).Round(2)

		entry := PayrollEntry{
			EmployeeID:    emp.ID,
			EmployeeName:  emp.Name,
			Role:          emp.Role,
			HourlyRate:    emp.HourlyRate,
			RegularHours:  reg,
			OvertimeHours: ot,
			GrossPay:      gross,
			Taxes:         taxes,
			NetPay:        gross.Sub(taxes),
		}
		period.Entries = append(period.Entries, entry)
		period.TotalGross = period.TotalGross.Add(entry.GrossPay)
		period.TotalTaxes = period.TotalTaxes.Add(entry.Taxes)
		period.TotalNet = period.TotalNet.Add(entry.NetPay)
	}

	return period, nil
}

// PayrollArchive is the append-only persistence sink for payroll runs
type PayrollArchive interface {
	Append(ctx context.Context, period *PayrollPeriod) error
}
