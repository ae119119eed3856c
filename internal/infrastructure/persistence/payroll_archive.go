package persistence

import (
	"context"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/workforce"
	"github.com/branchpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPayrollArchive implements workforce.PayrollArchive using GORM
type GormPayrollArchive struct {
	db *gorm.DB
}

// NewGormPayrollArchive creates a new GormPayrollArchive
func NewGormPayrollArchive(db *gorm.DB) *GormPayrollArchive {
	return &GormPayrollArchive{db: db}
}

// Append writes a generated payroll run to the archive
func (r *GormPayrollArchive) Append(ctx context.Context, period *workforce.PayrollPeriod) error {
	model := &models.PayrollPeriodModel{}
	if err := model.FromDomain(period); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByBranch returns archived payroll runs for a branch, newest
// period first
func (r *GormPayrollArchive) FindByBranch(ctx context.Context, key branch.Key) ([]*workforce.PayrollPeriod, error) {
	var periodModels []models.PayrollPeriodModel
	if err := r.db.WithContext(ctx).
		Where("branch_key = ?", key.String()).
		Order("period_start DESC").
		Find(&periodModels).Error; err != nil {
		return nil, err
	}

	periods := make([]*workforce.PayrollPeriod, 0, len(periodModels))
	for i := range periodModels {
		period, err := periodModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}
	return periods, nil
}
