package branch

import (
	"context"
	"time"

	"github.com/branchpos/backend/internal/domain/shared"
)

// Status represents the operating status of a branch
type Status string

const (
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusMaintenance Status = "maintenance"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusMaintenance:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Branch represents an independently operated business location with its
// own catalog, cart, transactions, staff and reconciliation cycle
type Branch struct {
	shared.BaseAggregateRoot
	Key          Key
	Name         string
	Address      string
	Phone        string
	Email        string
	Manager      string
	OpeningHours string
	Status       Status
}

// NewBranch creates a new branch
func NewBranch(key Key, name, address, phone, email, manager, openingHours string) (*Branch, error) {
	if key.IsZero() {
		return nil, shared.NewDomainError("INVALID_BRANCH_KEY", "Branch key cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_BRANCH_NAME", "Branch name cannot be empty")
	}

	b := &Branch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Key:               key,
		Name:              name,
		Address:           address,
		Phone:             phone,
		Email:             email,
		Manager:           manager,
		OpeningHours:      openingHours,
		Status:            StatusActive,
	}

	b.AddDomainEvent(NewBranchOpenedEvent(b))

	return b, nil
}

// IsOperational reports whether the branch can take ledger operations
func (b *Branch) IsOperational() bool {
	return b.Status == StatusActive
}

// SetStatus changes the operating status
func (b *Branch) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown branch status")
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// UpdateContact updates contact details
func (b *Branch) UpdateContact(address, phone, email, manager, openingHours string) {
	b.Address = address
	b.Phone = phone
	b.Email = email
	b.Manager = manager
	b.OpeningHours = openingHours
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// Repository defines persistence operations for branches
type Repository interface {
	Save(ctx context.Context, b *Branch) error
	FindByKey(ctx context.Context, key Key) (*Branch, error)
	FindAll(ctx context.Context) ([]*Branch, error)
}
