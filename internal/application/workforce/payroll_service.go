package workforce

import (
	"context"
	"time"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/branchpos/backend/internal/domain/workforce"
)

// PayrollService provides application services for generating payroll
// runs from closed shift records
type PayrollService struct {
	timeClock      *TimeClockService
	payrollArchive workforce.PayrollArchive
	eventBus       shared.EventBus
	clock          shared.Clock
	rates          workforce.PayrollRates
}

// NewPayrollService creates a new PayrollService
func NewPayrollService(
	timeClock *TimeClockService,
	payrollArchive workforce.PayrollArchive,
	eventBus shared.EventBus,
	clock shared.Clock,
	rates workforce.PayrollRates,
) *PayrollService {
	return &PayrollService{
		timeClock:      timeClock,
		payrollArchive: payrollArchive,
		eventBus:       eventBus,
		clock:          clock,
		rates:          rates,
	}
}

// Generate produces the payroll run for [start, end] over the branch's
// closed shifts and archives it. Open shifts are excluded; rerunning the
// same period yields the same amounts.
func (s *PayrollService) Generate(ctx context.Context, key branch.Key, start, end time.Time) (*PayrollPeriodResponse, error) {
	var period *workforce.PayrollPeriod
	err := s.timeClock.snapshot(ctx, key, func(employees []*workforce.Employee, entries []*workforce.TimeEntry) error {
		var err error
		period, err = workforce.GeneratePayroll(key, employees, entries, start, end, s.rates, s.clock.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := s.payrollArchive.Append(ctx, period); err != nil {
		return nil, err
	}
	_ = s.eventBus.Publish(ctx, workforce.NewPayrollGeneratedEvent(period))

	resp := ToPayrollPeriodResponse(period)
	return &resp, nil
}
