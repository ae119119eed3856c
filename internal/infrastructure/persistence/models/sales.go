package models

import (
	"encoding/json"
	"time"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/catalog"
	"github.com/branchpos/backend/internal/domain/sales"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionItem is the serialized form of one receipt line. Lines are
// frozen snapshots; they are stored inline with the transaction instead
// of joining back to the mutable catalog.
type transactionItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Notes       string          `json:"notes,omitempty"`
	PrepMinutes int             `json:"prep_minutes,omitempty"`
}

// TransactionModel is the persistence model for the append-only
// transaction ledger
type TransactionModel struct {
	BranchScopedModel
	ReceiptNumber string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	ItemsJSON     string          `gorm:"column:items;type:text;not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Tax           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Tip           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(20);not null;index"`
	OrderType     string          `gorm:"type:varchar(20);not null"`
	CustomerName  string          `gorm:"type:varchar(255)"`
	CustomerPhone string          `gorm:"type:varchar(50)"`
	Notes         string          `gorm:"type:text"`
	CashierID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CashierName   string          `gorm:"type:varchar(255)"`
	Status        string          `gorm:"type:varchar(20);not null;index"`
	Timestamp     time.Time       `gorm:"not null;index"`
	Version       int             `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction
func (m *TransactionModel) ToDomain() (*sales.Transaction, error) {
	var stored []transactionItem
	if err := json.Unmarshal([]byte(m.ItemsJSON), &stored); err != nil {
		return nil, err
	}

	items := make([]catalog.CartItem, 0, len(stored))
	for _, it := range stored {
		items = append(items, catalog.CartItem{
			Product: catalog.Product{
				ID:          it.ProductID,
				Name:        it.Name,
				Category:    catalog.Category(it.Category),
				Price:       it.UnitPrice,
				IsAvailable: true,
				PrepMinutes: it.PrepMinutes,
			},
			Quantity: it.Quantity,
			Subtotal: it.Subtotal,
			Notes:    it.Notes,
		})
	}

	return &sales.Transaction{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		ReceiptNumber: m.ReceiptNumber,
		Branch:        branch.Key(m.BranchKey),
		Items:         items,
		Subtotal:      m.Subtotal,
		Tax:           m.Tax,
		Tip:           m.Tip,
		Total:         m.Total,
		PaymentMethod: catalog.PaymentMethod(m.PaymentMethod),
		OrderType:     catalog.OrderType(m.OrderType),
		CustomerName:  m.CustomerName,
		CustomerPhone: m.CustomerPhone,
		Notes:         m.Notes,
		CashierID:     m.CashierID,
		CashierName:   m.CashierName,
		Status:        sales.Status(m.Status),
		Timestamp:     m.Timestamp,
	}, nil
}

// FromDomain populates the persistence model from a domain Transaction
func (m *TransactionModel) FromDomain(t *sales.Transaction) error {
	stored := make([]transactionItem, 0, len(t.Items))
	for _, it := range t.Items {
		stored = append(stored, transactionItem{
			ProductID:   it.Product.ID,
			Name:        it.Product.Name,
			Category:    it.Product.Category.String(),
			UnitPrice:   it.Product.Price,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal,
			Notes:       it.Notes,
			PrepMinutes: it.Product.PrepMinutes,
		})
	}
	payload, err := json.Marshal(stored)
	if err != nil {
		return err
	}

	m.ID = t.ID
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt
	m.BranchKey = t.Branch.String()
	m.ReceiptNumber = t.ReceiptNumber
	m.ItemsJSON = string(payload)
	m.Subtotal = t.Subtotal
	m.Tax = t.Tax
	m.Tip = t.Tip
	m.Total = t.Total
	m.PaymentMethod = string(t.PaymentMethod)
	m.OrderType = string(t.OrderType)
	m.CustomerName = t.CustomerName
	m.CustomerPhone = t.CustomerPhone
	m.Notes = t.Notes
	m.CashierID = t.CashierID
	m.CashierName = t.CashierName
	m.Status = t.Status.String()
	m.Timestamp = t.Timestamp
	m.Version = t.Version
	return nil
}

// TransactionModelFromDomain creates a new persistence model from a
// domain Transaction
func TransactionModelFromDomain(t *sales.Transaction) (*TransactionModel, error) {
	m := &TransactionModel{}
	if err := m.FromDomain(t); err != nil {
		return nil, err
	}
	return m, nil
}
