package persistence

import (
	"context"
	"errors"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/branchpos/backend/internal/domain/workforce"
	"github.com/branchpos/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements workforce.EmployeeRepository using
// GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByBranch returns the active roster for a branch ordered by name
func (r *GormEmployeeRepository) FindByBranch(ctx context.Context, key branch.Key) ([]*workforce.Employee, error) {
	var employeeModels []models.EmployeeModel
	if err := r.db.WithContext(ctx).
		Where("branch_key = ? AND is_active = ?", key.String(), true).
		Order("name ASC").
		Find(&employeeModels).Error; err != nil {
		return nil, err
	}

	employees := make([]*workforce.Employee, len(employeeModels))
	for i := range employeeModels {
		employees[i] = employeeModels[i].ToDomain()
	}
	return employees, nil
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists an employee, inserting or updating by ID
func (r *GormEmployeeRepository) Save(ctx context.Context, e *workforce.Employee) error {
	model := models.EmployeeModelFromDomain(e)
	return r.db.WithContext(ctx).Save(model).Error
}
