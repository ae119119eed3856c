package models

import (
	"encoding/json"
	"time"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/branchpos/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeModel is the persistence model for branch staff
type EmployeeModel struct {
	BranchScopedModel
	Name       string          `gorm:"type:varchar(255);not null"`
	Role       string          `gorm:"type:varchar(50);not null"`
	HourlyRate decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Email      string          `gorm:"type:varchar(255)"`
	Phone      string          `gorm:"type:varchar(50)"`
	IsActive   bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the persistence model to a domain Employee
func (m *EmployeeModel) ToDomain() *workforce.Employee {
	return &workforce.Employee{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Branch:     branch.Key(m.BranchKey),
		Name:       m.Name,
		Role:       workforce.Role(m.Role),
		HourlyRate: m.HourlyRate,
		Email:      m.Email,
		Phone:      m.Phone,
		IsActive:   m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Employee
func (m *EmployeeModel) FromDomain(e *workforce.Employee) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
	m.BranchKey = e.Branch.String()
	m.Name = e.Name
	m.Role = e.Role.String()
	m.HourlyRate = e.HourlyRate
	m.Email = e.Email
	m.Phone = e.Phone
	m.IsActive = e.IsActive
}

// EmployeeModelFromDomain creates a new persistence model from a domain
// Employee
func EmployeeModelFromDomain(e *workforce.Employee) *EmployeeModel {
	m := &EmployeeModel{}
	m.FromDomain(e)
	return m
}

// TimeEntryModel is the persistence model for shift records
type TimeEntryModel struct {
	BranchScopedModel
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeName  string          `gorm:"type:varchar(255);not null"`
	ClockIn       time.Time       `gorm:"not null;index"`
	ClockOut      *time.Time      `gorm:""`
	BreakStart    *time.Time      `gorm:""`
	BreakEnd      *time.Time      `gorm:""`
	TotalHours    decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"`
	RegularHours  decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"`
	OvertimeHours decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"`
	Status        string          `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (TimeEntryModel) TableName() string {
	return "time_entries"
}

// ToDomain converts the persistence model to a domain TimeEntry
func (m *TimeEntryModel) ToDomain() *workforce.TimeEntry {
	return &workforce.TimeEntry{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Branch:        branch.Key(m.BranchKey),
		EmployeeID:    m.EmployeeID,
		EmployeeName:  m.EmployeeName,
		ClockIn:       m.ClockIn,
		ClockOut:      m.ClockOut,
		BreakStart:    m.BreakStart,
		BreakEnd:      m.BreakEnd,
		TotalHours:    m.TotalHours,
		RegularHours:  m.RegularHours,
		OvertimeHours: m.OvertimeHours,
		Status:        workforce.ClockStatus(m.Status),
	}
}

// FromDomain populates the persistence model from a domain TimeEntry
func (m *TimeEntryModel) FromDomain(e *workforce.TimeEntry) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
	m.BranchKey = e.Branch.String()
	m.EmployeeID = e.EmployeeID
	m.EmployeeName = e.EmployeeName
	m.ClockIn = e.ClockIn
	m.ClockOut = e.ClockOut
	m.BreakStart = e.BreakStart
	m.BreakEnd = e.BreakEnd
	m.TotalHours = e.TotalHours
	m.RegularHours = e.RegularHours
	m.OvertimeHours = e.OvertimeHours
	m.Status = e.Status.String()
}

// TimeEntryModelFromDomain creates a new persistence model from a
// domain TimeEntry
func TimeEntryModelFromDomain(e *workforce.TimeEntry) *TimeEntryModel {
	m := &TimeEntryModel{}
	m.FromDomain(e)
	return m
}

// PayrollPeriodModel is the persistence model for archived payroll runs.
// Entry lines are frozen at generation time and stored inline.
type PayrollPeriodModel struct {
	BranchScopedModel
	PeriodStart time.Time       `gorm:"not null;index"`
	PeriodEnd   time.Time       `gorm:"not null"`
	EntriesJSON string          `gorm:"column:entries;type:text;not null"`
	TotalGross  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalTaxes  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalNet    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	GeneratedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PayrollPeriodModel) TableName() string {
	return "payroll_periods"
}

// ToDomain converts the persistence model to a domain PayrollPeriod
func (m *PayrollPeriodModel) ToDomain() (*workforce.PayrollPeriod, error) {
	var entries []workforce.PayrollEntry
	if err := json.Unmarshal([]byte(m.EntriesJSON), &entries); err != nil {
		return nil, err
	}

	return &workforce.PayrollPeriod{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Branch:      branch.Key(m.BranchKey),
		PeriodStart: m.PeriodStart,
		PeriodEnd:   m.PeriodEnd,
		Entries:     entries,
		TotalGross:  m.TotalGross,
		TotalTaxes:  m.TotalTaxes,
		TotalNet:    m.TotalNet,
		GeneratedAt: m.GeneratedAt,
	}, nil
}

// FromDomain populates the persistence model from a domain
// PayrollPeriod
func (m *PayrollPeriodModel) FromDomain(p *workforce.PayrollPeriod) error {
	payload, err := json.Marshal(p.Entries)
	if err != nil {
		return err
	}

	m.ID = p.ID
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
	m.BranchKey = p.Branch.String()
	m.PeriodStart = p.PeriodStart
	m.PeriodEnd = p.PeriodEnd
	m.EntriesJSON = string(payload)
	m.TotalGross = p.TotalGross
	m.TotalTaxes = p.TotalTaxes
	m.TotalNet = p.TotalNet
	m.GeneratedAt = p.GeneratedAt
	return nil
}
