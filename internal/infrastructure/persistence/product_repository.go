package persistence

import (
	"context"
	"errors"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/catalog"
	"github.com/branchpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByBranch returns the catalog for one branch in menu order
func (r *GormProductRepository) FindByBranch(ctx context.Context, key branch.Key) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("branch_key = ?", key.String()).
		Order("sort_order ASC").
		Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(productModels))
	for i := range productModels {
		products[i] = productModels[i].ToDomain()
	}
	return products, nil
}

// Save persists a product for a branch. New products are appended at the
// end of the menu; existing ones keep their position.
func (r *GormProductRepository) Save(ctx context.Context, key branch.Key, p catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ProductModel
		err := tx.First(&existing, "id = ?", p.ID).Error
		switch {
		case err == nil:
			existing.FromDomain(key.String(), p, existing.SortOrder)
			return tx.Save(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			var maxOrder int64
			if err := tx.Model(&models.ProductModel{}).
				Where("branch_key = ?", key.String()).
				Select("COALESCE(MAX(sort_order), -1)").
				Scan(&maxOrder).Error; err != nil {
				return err
			}
			model := &models.ProductModel{}
			model.FromDomain(key.String(), p, int(maxOrder)+1)
			return tx.Create(model).Error
		default:
			return err
		}
	})
}
