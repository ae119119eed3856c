package models

import (
	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/shared"
)

// BranchModel is the persistence model for the Branch aggregate
type BranchModel struct {
	BaseModel
	Key          string `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name         string `gorm:"type:varchar(255);not null"`
	Address      string `gorm:"type:varchar(255)"`
	Phone        string `gorm:"type:varchar(50)"`
	Email        string `gorm:"type:varchar(255)"`
	Manager      string `gorm:"type:varchar(255)"`
	OpeningHours string `gorm:"type:varchar(100)"`
	Status       string `gorm:"type:varchar(20);not null"`
	Version      int    `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (BranchModel) TableName() string {
	return "branches"
}

// ToDomain converts the persistence model to a domain Branch aggregate
func (m *BranchModel) ToDomain() *branch.Branch {
	return &branch.Branch{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Key:          branch.Key(m.Key),
		Name:         m.Name,
		Address:      m.Address,
		Phone:        m.Phone,
		Email:        m.Email,
		Manager:      m.Manager,
		OpeningHours: m.OpeningHours,
		Status:       branch.Status(m.Status),
	}
}

// FromDomain populates the persistence model from a domain Branch
// aggregate
func (m *BranchModel) FromDomain(b *branch.Branch) {
	m.ID = b.ID
	m.CreatedAt = b.CreatedAt
	m.UpdatedAt = b.UpdatedAt
	m.Key = b.Key.String()
	m.Name = b.Name
	m.Address = b.Address
	m.Phone = b.Phone
	m.Email = b.Email
	m.Manager = b.Manager
	m.OpeningHours = b.OpeningHours
	m.Status = b.Status.String()
	m.Version = b.Version
}

// BranchModelFromDomain creates a new persistence model from a domain
// Branch aggregate
func BranchModelFromDomain(b *branch.Branch) *BranchModel {
	m := &BranchModel{}
	m.FromDomain(b)
	return m
}
