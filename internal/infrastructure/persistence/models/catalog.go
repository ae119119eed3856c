package models

import (
	"github.com/branchpos/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for catalog products
type ProductModel struct {
	BranchScopedModel
	Name        string          `gorm:"type:varchar(255);not null"`
	Category    string          `gorm:"type:varchar(50);not null;index"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description string          `gorm:"type:text"`
	IsAvailable bool            `gorm:"not null;default:true"`
	PrepMinutes int             `gorm:"not null;default:0"`
	SortOrder   int             `gorm:"not null;default:0;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() catalog.Product {
	return catalog.Product{
		ID:          m.ID,
		Name:        m.Name,
		Category:    catalog.Category(m.Category),
		Price:       m.Price,
		Description: m.Description,
		IsAvailable: m.IsAvailable,
		PrepMinutes: m.PrepMinutes,
	}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(key string, p catalog.Product, sortOrder int) {
	m.ID = p.ID
	m.BranchKey = key
	m.Name = p.Name
	m.Category = p.Category.String()
	m.Price = p.Price
	m.Description = p.Description
	m.IsAvailable = p.IsAvailable
	m.PrepMinutes = p.PrepMinutes
	m.SortOrder = sortOrder
}
