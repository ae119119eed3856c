package workforce

import (
	"context"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/branchpos/backend/internal/domain/workforce"
	"github.com/google/uuid"
)

// branchState is the per-branch workforce partition: the hydrated roster
// plus every shift record of the branch, open and closed
type branchState struct {
	rosterLoaded bool
	employees    []*workforce.Employee
	entries      []*workforce.TimeEntry
}

func seedBranchState(branch.Key) *branchState {
	return &branchState{
		employees: make([]*workforce.Employee, 0),
		entries:   make([]*workforce.TimeEntry, 0),
	}
}

// TimeClockService provides application services for the clock cycle of
// a branch's staff
type TimeClockService struct {
	store        *branch.PartitionStore[branchState]
	employeeRepo workforce.EmployeeRepository
	entryArchive workforce.TimeEntryArchive
	eventBus     shared.EventBus
	clock        shared.Clock
}

// NewTimeClockService creates a new TimeClockService
func NewTimeClockService(
	employeeRepo workforce.EmployeeRepository,
	entryArchive workforce.TimeEntryArchive,
	eventBus shared.EventBus,
	clock shared.Clock,
) *TimeClockService {
	return &TimeClockService{
		store:        branch.NewPartitionStore(seedBranchState),
		employeeRepo: employeeRepo,
		entryArchive: entryArchive,
		eventBus:     eventBus,
		clock:        clock,
	}
}

// Roster retrieves the branch's staff with their current clock status
func (s *TimeClockService) Roster(ctx context.Context, key branch.Key) ([]EmployeeResponse, error) {
	p, err := s.partition(ctx, key)
	if err != nil {
		return nil, err
	}

	var out []EmployeeResponse
	err = p.Read(func(st *branchState) error {
		out = make([]EmployeeResponse, 0, len(st.employees))
		for _, emp := range st.employees {
			status := workforce.ClockStatusNotClockedIn
			if open := openEntryFor(st.entries, emp.ID); open != nil {
				status = open.Status
			}
			out = append(out, EmployeeResponse{
				ID:          emp.ID,
				Name:        emp.Name,
				Role:        emp.Role.String(),
				HourlyRate:  emp.HourlyRate,
				IsActive:    emp.IsActive,
				ClockStatus: status.String(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ClockIn opens a shift for the employee. An employee with an open shift
// cannot clock in again.
func (s *TimeClockService) ClockIn(ctx context.Context, key branch.Key, employeeID uuid.UUID) (*TimeEntryResponse, error) {
	p, err := s.partition(ctx, key)
	if err != nil {
		return nil, err
	}

	var entry *workforce.TimeEntry
	err = p.Update(func(st *branchState) error {
		emp := findEmployee(st.employees, employeeID)
		if emp == nil {
			return shared.ErrNoOperator
		}
		if openEntryFor(st.entries, employeeID) != nil {
			return shared.ErrAlreadyClockedIn
		}

		var err error
		entry, err = workforce.NewTimeEntry(key, emp, s.clock.Now())
		if err != nil {
			return err
		}
		if err := s.entryArchive.Append(ctx, entry); err != nil {
			return err
		}
		st.entries = append(st.entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.eventBus.Publish(ctx, workforce.NewEmployeeClockedInEvent(entry))

	resp := ToTimeEntryResponse(entry)
	return &resp, nil
}

// ClockOut closes the employee's open shift and freezes its hour split
func (s *TimeClockService) ClockOut(ctx context.Context, key branch.Key, employeeID uuid.UUID) (*TimeEntryResponse, error) {
	entry, err := s.mutateOpenEntry(ctx, key, employeeID, func(e *workforce.TimeEntry) error {
		return e.Close(s.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	_ = s.eventBus.Publish(ctx, workforce.NewEmployeeClockedOutEvent(entry))

	resp := ToTimeEntryResponse(entry)
	return &resp, nil
}

// StartBreak moves the employee's open shift onto break
func (s *TimeClockService) StartBreak(ctx context.Context, key branch.Key, employeeID uuid.UUID) (*TimeEntryResponse, error) {
	entry, err := s.mutateOpenEntry(ctx, key, employeeID, func(e *workforce.TimeEntry) error {
		return e.StartBreak(s.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	resp := ToTimeEntryResponse(entry)
	return &resp, nil
}

// EndBreak returns the employee's shift from break
func (s *TimeClockService) EndBreak(ctx context.Context, key branch.Key, employeeID uuid.UUID) (*TimeEntryResponse, error) {
	entry, err := s.mutateOpenEntry(ctx, key, employeeID, func(e *workforce.TimeEntry) error {
		return e.EndBreak(s.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	resp := ToTimeEntryResponse(entry)
	return &resp, nil
}

// ListEntries retrieves all of the branch's shift records, oldest first
func (s *TimeClockService) ListEntries(ctx context.Context, key branch.Key) ([]TimeEntryResponse, error) {
	p, err := s.partition(ctx, key)
	if err != nil {
		return nil, err
	}

	var out []TimeEntryResponse
	err = p.Read(func(st *branchState) error {
		out = ToTimeEntryResponses(st.entries)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// snapshot hands the roster and entries to fn under the partition's read
// lock; used by the payroll service
func (s *TimeClockService) snapshot(ctx context.Context, key branch.Key, fn func(employees []*workforce.Employee, entries []*workforce.TimeEntry) error) error {
	p, err := s.partition(ctx, key)
	if err != nil {
		return err
	}
	return p.Read(func(st *branchState) error {
		return fn(st.employees, st.entries)
	})
}

// mutateOpenEntry runs fn against the employee's open shift in the
// branch's critical section and persists the result
func (s *TimeClockService) mutateOpenEntry(ctx context.Context, key branch.Key, employeeID uuid.UUID, fn func(e *workforce.TimeEntry) error) (*workforce.TimeEntry, error) {
	p, err := s.partition(ctx, key)
	if err != nil {
		return nil, err
	}

	var entry *workforce.TimeEntry
	err = p.Update(func(st *branchState) error {
		open := openEntryFor(st.entries, employeeID)
		if open == nil {
			return shared.ErrNotClockedIn
		}
		if err := fn(open); err != nil {
			return err
		}
		entry = open
		return s.entryArchive.Update(ctx, open)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// partition returns the branch's workforce partition with a hydrated
// roster
func (s *TimeClockService) partition(ctx context.Context, key branch.Key) (*branch.Partition[branchState], error) {
	p, err := s.store.Get(key)
	if err != nil {
		return nil, err
	}

	loaded := false
	_ = p.Read(func(st *branchState) error {
		loaded = st.rosterLoaded
		return nil
	})
	if loaded {
		return p, nil
	}

	employees, err := s.employeeRepo.FindByBranch(ctx, key)
	if err != nil {
		return nil, err
	}

	err = p.Update(func(st *branchState) error {
		if st.rosterLoaded {
			return nil
		}
		st.employees = employees
		st.rosterLoaded = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func findEmployee(employees []*workforce.Employee, id uuid.UUID) *workforce.Employee {
	for _, e := range employees {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func openEntryFor(entries []*workforce.TimeEntry, employeeID uuid.UUID) *workforce.TimeEntry {
	for _, e := range entries {
		if e.EmployeeID == employeeID && e.IsOpen() {
			return e
		}
	}
	return nil
}
