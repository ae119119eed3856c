package persistence

import (
	"context"
	"errors"

	"github.com/branchpos/backend/internal/domain/identity"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/branchpos/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOperatorRepository implements identity.Repository using GORM
type GormOperatorRepository struct {
	db *gorm.DB
}

// NewGormOperatorRepository creates a new GormOperatorRepository
func NewGormOperatorRepository(db *gorm.DB) *GormOperatorRepository {
	return &GormOperatorRepository{db: db}
}

// FindByUsername finds an operator by login name
func (r *GormOperatorRepository) FindByUsername(ctx context.Context, username string) (*identity.Operator, error) {
	var model models.OperatorModel
	if err := r.db.WithContext(ctx).First(&model, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByID finds an operator by ID
func (r *GormOperatorRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Operator, error) {
	var model models.OperatorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists an operator, inserting or updating by ID
func (r *GormOperatorRepository) Save(ctx context.Context, o *identity.Operator) error {
	model := models.OperatorModelFromDomain(o)
	return r.db.WithContext(ctx).Save(model).Error
}
