package models

import (
	"encoding/json"
	"time"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/catalog"
	"github.com/branchpos/backend/internal/domain/endofday"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItemModel is the persistence model for branch stock levels
type InventoryItemModel struct {
	BranchScopedModel
	Name     string          `gorm:"type:varchar(255);not null"`
	Unit     string          `gorm:"type:varchar(20);not null"`
	UnitCost decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain InventoryItem
func (m *InventoryItemModel) ToDomain() endofday.InventoryItem {
	return endofday.InventoryItem{
		ID:       m.ID,
		Name:     m.Name,
		Unit:     m.Unit,
		UnitCost: m.UnitCost,
		Quantity: m.Quantity,
	}
}

// FromDomain populates the persistence model from a domain
// InventoryItem
func (m *InventoryItemModel) FromDomain(key string, item endofday.InventoryItem) {
	m.ID = item.ID
	m.BranchKey = key
	m.Name = item.Name
	m.Unit = item.Unit
	m.UnitCost = item.UnitCost
	m.Quantity = item.Quantity
}

// reportStockLine is the serialized form of one stock discrepancy on an
// archived report
type reportStockLine struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Unit     string          `json:"unit"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	Expected decimal.Decimal `json:"expected"`
	Actual   decimal.Decimal `json:"actual"`
	Notes    string          `json:"notes,omitempty"`
}

// ReportModel is the persistence model for archived close-of-day
// reports
type ReportModel struct {
	BranchScopedModel
	BusinessDate      time.Time       `gorm:"not null;index"`
	TransactionCount  int             `gorm:"not null"`
	GrossRevenue      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalTax          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalTips         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ByPaymentJSON     string          `gorm:"column:by_payment_method;type:text;not null"`
	DiscrepanciesJSON string          `gorm:"column:stock_discrepancies;type:text;not null"`
	StockVariance     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CashDiscrepancy   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CashBalanced      bool            `gorm:"not null"`
	RequiresAttention bool            `gorm:"not null;index"`
	GeneratedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReportModel) TableName() string {
	return "end_of_day_reports"
}

// ToDomain converts the persistence model to a domain Report
func (m *ReportModel) ToDomain() (*endofday.Report, error) {
	var byPayment map[catalog.PaymentMethod]decimal.Decimal
	if err := json.Unmarshal([]byte(m.ByPaymentJSON), &byPayment); err != nil {
		return nil, err
	}
	var lines []reportStockLine
	if err := json.Unmarshal([]byte(m.DiscrepanciesJSON), &lines); err != nil {
		return nil, err
	}

	discrepancies := make([]endofday.StockCheckItem, 0, len(lines))
	for _, line := range lines {
		item := endofday.StockCheckItem{
			Name:     line.Name,
			Unit:     line.Unit,
			UnitCost: line.UnitCost,
			Expected: line.Expected,
			Actual:   line.Actual,
			Notes:    line.Notes,
		}
		if id, err := uuid.Parse(line.ItemID); err == nil {
			item.ItemID = id
		}
		discrepancies = append(discrepancies, item)
	}

	return &endofday.Report{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Branch:       branch.Key(m.BranchKey),
		BusinessDate: m.BusinessDate,
		Sales: endofday.SalesSummary{
			TransactionCount: m.TransactionCount,
			GrossRevenue:     m.GrossRevenue,
			TotalTax:         m.TotalTax,
			TotalTips:        m.TotalTips,
			ByPaymentMethod:  byPayment,
		},
		StockDiscrepancies: discrepancies,
		StockVariance:      m.StockVariance,
		CashDiscrepancy:    m.CashDiscrepancy,
		CashBalanced:       m.CashBalanced,
		RequiresAttention:  m.RequiresAttention,
		GeneratedAt:        m.GeneratedAt,
	}, nil
}

// FromDomain populates the persistence model from a domain Report
func (m *ReportModel) FromDomain(r *endofday.Report) error {
	byPayment, err := json.Marshal(r.Sales.ByPaymentMethod)
	if err != nil {
		return err
	}

	lines := make([]reportStockLine, 0, len(r.StockDiscrepancies))
	for _, item := range r.StockDiscrepancies {
		lines = append(lines, reportStockLine{
			ItemID:   item.ItemID.String(),
			Name:     item.Name,
			Unit:     item.Unit,
			UnitCost: item.UnitCost,
			Expected: item.Expected,
			Actual:   item.Actual,
			Notes:    item.Notes,
		})
	}
	discrepancies, err := json.Marshal(lines)
	if err != nil {
		return err
	}

	m.ID = r.ID
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
	m.BranchKey = r.Branch.String()
	m.BusinessDate = r.BusinessDate
	m.TransactionCount = r.Sales.TransactionCount
	m.GrossRevenue = r.Sales.GrossRevenue
	m.TotalTax = r.Sales.TotalTax
	m.TotalTips = r.Sales.TotalTips
	m.ByPaymentJSON = string(byPayment)
	m.DiscrepanciesJSON = string(discrepancies)
	m.StockVariance = r.StockVariance
	m.CashDiscrepancy = r.CashDiscrepancy
	m.CashBalanced = r.CashBalanced
	m.RequiresAttention = r.RequiresAttention
	m.GeneratedAt = r.GeneratedAt
	return nil
}
