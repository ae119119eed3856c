package persistence

import (
	"context"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/endofday"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/branchpos/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormInventoryStore implements endofday.InventoryStore using GORM
type GormInventoryStore struct {
	db *gorm.DB
}

// NewGormInventoryStore creates a new GormInventoryStore
func NewGormInventoryStore(db *gorm.DB) *GormInventoryStore {
	return &GormInventoryStore{db: db}
}

// ListItems returns the tracked stock items for a branch ordered by
// name
func (r *GormInventoryStore) ListItems(ctx context.Context, key branch.Key) ([]endofday.InventoryItem, error) {
	var itemModels []models.InventoryItemModel
	if err := r.db.WithContext(ctx).
		Where("branch_key = ?", key.String()).
		Order("name ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	items := make([]endofday.InventoryItem, len(itemModels))
	for i := range itemModels {
		items[i] = itemModels[i].ToDomain()
	}
	return items, nil
}

// WriteStockLevel overwrites the on-hand quantity for one item after a
// completed stock check
func (r *GormInventoryStore) WriteStockLevel(ctx context.Context, key branch.Key, itemID uuid.UUID, quantity decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryItemModel{}).
		Where("branch_key = ? AND id = ?", key.String(), itemID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrItemNotFound
	}
	return nil
}

// SaveItem persists an inventory item for a branch
func (r *GormInventoryStore) SaveItem(ctx context.Context, key branch.Key, item endofday.InventoryItem) error {
	model := &models.InventoryItemModel{}
	model.FromDomain(key.String(), item)
	return r.db.WithContext(ctx).Save(model).Error
}
