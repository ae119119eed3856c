package persistence

import (
	"context"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/endofday"
	"github.com/branchpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReportArchive implements endofday.ReportArchive using GORM
type GormReportArchive struct {
	db *gorm.DB
}

// NewGormReportArchive creates a new GormReportArchive
func NewGormReportArchive(db *gorm.DB) *GormReportArchive {
	return &GormReportArchive{db: db}
}

// Append writes a close-of-day report to the archive
func (r *GormReportArchive) Append(ctx context.Context, report *endofday.Report) error {
	model := &models.ReportModel{}
	if err := model.FromDomain(report); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByBranch returns archived reports for a branch, newest business
// date first
func (r *GormReportArchive) FindByBranch(ctx context.Context, key branch.Key) ([]*endofday.Report, error) {
	var reportModels []models.ReportModel
	if err := r.db.WithContext(ctx).
		Where("branch_key = ?", key.String()).
		Order("business_date DESC").
		Find(&reportModels).Error; err != nil {
		return nil, err
	}

	reports := make([]*endofday.Report, 0, len(reportModels))
	for i := range reportModels {
		report, err := reportModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
