package persistence

import (
	"context"
	"errors"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/branchpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBranchRepository implements branch.Repository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// Save persists a branch aggregate, inserting or updating by ID
func (r *GormBranchRepository) Save(ctx context.Context, b *branch.Branch) error {
	model := models.BranchModelFromDomain(b)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByKey finds a branch by its routing key
func (r *GormBranchRepository) FindByKey(ctx context.Context, key branch.Key) (*branch.Branch, error) {
	var model models.BranchModel
	if err := r.db.WithContext(ctx).First(&model, "key = ?", key.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every registered branch ordered by key
func (r *GormBranchRepository) FindAll(ctx context.Context) ([]*branch.Branch, error) {
	var branchModels []models.BranchModel
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&branchModels).Error; err != nil {
		return nil, err
	}

	branches := make([]*branch.Branch, len(branchModels))
	for i := range branchModels {
		branches[i] = branchModels[i].ToDomain()
	}
	return branches, nil
}
