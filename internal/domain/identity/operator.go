package identity

import (
	"context"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// OperatorRole classifies what an operator may do at the register
type OperatorRole string

const (
	OperatorRoleAdmin   OperatorRole = "admin"
	OperatorRoleManager OperatorRole = "manager"
	OperatorRoleCashier OperatorRole = "cashier"
)

// IsValid checks if the role is a valid OperatorRole
func (r OperatorRole) IsValid() bool {
	switch r {
	case OperatorRoleAdmin, OperatorRoleManager, OperatorRoleCashier:
		return true
	}
	return false
}

// String returns the string representation of OperatorRole
func (r OperatorRole) String() string {
	return string(r)
}

// Operator is a register user. PINs are stored as bcrypt hashes and
// branch access is an explicit allow list; admins bypass it.
type Operator struct {
	shared.BaseEntity
	Username string
	Name     string
	Role     OperatorRole
	PINHash  string
	Branches []branch.Key
	IsActive bool
}

// NewOperator creates an operator with a hashed PIN
func NewOperator(username, name string, role OperatorRole, pin string, branches []branch.Key) (*Operator, error) {
	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown operator role")
	}
	if len(pin) < 4 {
		return nil, shared.NewDomainError("INVALID_PIN", "PIN must be at least 4 digits")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Operator{
		BaseEntity: shared.NewBaseEntity(),
		Username:   username,
		Name:       name,
		Role:       role,
		PINHash:    string(hash),
		Branches:   branches,
		IsActive:   true,
	}, nil
}

// VerifyPIN checks a candidate PIN against the stored hash
func (o *Operator) VerifyPIN(pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(o.PINHash), []byte(pin)) == nil
}

// CanAccess reports whether the operator may work the given branch
func (o *Operator) CanAccess(key branch.Key) bool {
	if o.Role == OperatorRoleAdmin {
		return true
	}
	for _, b := range o.Branches {
		if b == key {
			return true
		}
	}
	return false
}

// GrantBranch adds a branch to the operator's allow list
func (o *Operator) GrantBranch(key branch.Key) {
	for _, b := range o.Branches {
		if b == key {
			return
		}
	}
	o.Branches = append(o.Branches, key)
}

// Deactivate locks the operator out without deleting history
func (o *Operator) Deactivate() {
	o.IsActive = false
}

// Repository loads and stores operators
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*Operator, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Operator, error)
	Save(ctx context.Context, o *Operator) error
}
