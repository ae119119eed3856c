package workforce

import (
	"context"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Role classifies an employee's position
type Role string

const (
	RoleManager Role = "manager"
	RoleBarista Role = "barista"
	RoleCashier Role = "cashier"
	RoleBaker   Role = "baker"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	switch r {
	case RoleManager, RoleBarista, RoleCashier, RoleBaker:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Employee is a branch-scoped staff record carrying the hourly rate that
// payroll is computed from
type Employee struct {
	shared.BaseEntity
	Branch     branch.Key
	Name       string
	Role       Role
	HourlyRate decimal.Decimal
	Email      string
	Phone      string
	IsActive   bool
}

// NewEmployee creates a new employee for a branch
func NewEmployee(key branch.Key, name string, role Role, hourlyRate decimal.Decimal) (*Employee, error) {
	if key.IsZero() {
		return nil, shared.ErrNoActiveBranch
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE_NAME", "Employee name cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown employee role")
	}
	if hourlyRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_HOURLY_RATE", "Hourly rate cannot be negative")
	}

	return &Employee{
		BaseEntity: shared.NewBaseEntity(),
		Branch:     key,
		Name:       name,
		Role:       role,
		HourlyRate: hourlyRate,
		IsActive:   true,
	}, nil
}

// Deactivate marks the employee inactive without removing past time
// entries or payroll history
func (e *Employee) Deactivate() {
	e.IsActive = false
}

// EmployeeRepository loads a branch's staff roster
type EmployeeRepository interface {
	FindByBranch(ctx context.Context, key branch.Key) ([]*Employee, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	Save(ctx context.Context, e *Employee) error
}
