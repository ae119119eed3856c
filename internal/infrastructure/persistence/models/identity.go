package models

import (
	"strings"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/identity"
	"github.com/branchpos/backend/internal/domain/shared"
)

// OperatorModel is the persistence model for terminal operators
type OperatorModel struct {
	BaseModel
	Username string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name     string `gorm:"type:varchar(255);not null"`
	Role     string `gorm:"type:varchar(50);not null"`
	PINHash  string `gorm:"column:pin_hash;type:varchar(100);not null"`
	Branches string `gorm:"type:text;not null;default:''"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (OperatorModel) TableName() string {
	return "operators"
}

// ToDomain converts the persistence model to a domain Operator
func (m *OperatorModel) ToDomain() *identity.Operator {
	var branches []branch.Key
	for _, raw := range strings.Split(m.Branches, ",") {
		if raw = strings.TrimSpace(raw); raw != "" {
			branches = append(branches, branch.Key(raw))
		}
	}

	return &identity.Operator{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Username: m.Username,
		Name:     m.Name,
		Role:     identity.OperatorRole(m.Role),
		PINHash:  m.PINHash,
		Branches: branches,
		IsActive: m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Operator
func (m *OperatorModel) FromDomain(op *identity.Operator) {
	keys := make([]string, 0, len(op.Branches))
	for _, key := range op.Branches {
		keys = append(keys, key.String())
	}

	m.ID = op.ID
	m.CreatedAt = op.CreatedAt
	m.UpdatedAt = op.UpdatedAt
	m.Username = op.Username
	m.Name = op.Name
	m.Role = op.Role.String()
	m.PINHash = op.PINHash
	m.Branches = strings.Join(keys, ",")
	m.IsActive = op.IsActive
}

// OperatorModelFromDomain creates a new persistence model from a domain
// Operator
func OperatorModelFromDomain(op *identity.Operator) *OperatorModel {
	m := &OperatorModel{}
	m.FromDomain(op)
	return m
}
