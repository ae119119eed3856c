package persistence

import (
	"context"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/branchpos/backend/internal/domain/workforce"
	"github.com/branchpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTimeEntryArchive implements workforce.TimeEntryArchive using GORM
type GormTimeEntryArchive struct {
	db *gorm.DB
}

// NewGormTimeEntryArchive creates a new GormTimeEntryArchive
func NewGormTimeEntryArchive(db *gorm.DB) *GormTimeEntryArchive {
	return &GormTimeEntryArchive{db: db}
}

// Append writes a freshly opened shift record
func (r *GormTimeEntryArchive) Append(ctx context.Context, entry *workforce.TimeEntry) error {
	model := models.TimeEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update rewrites an existing shift record after a state change
func (r *GormTimeEntryArchive) Update(ctx context.Context, entry *workforce.TimeEntry) error {
	model := models.TimeEntryModelFromDomain(entry)
	result := r.db.WithContext(ctx).
		Model(&models.TimeEntryModel{}).
		Where("id = ?", entry.ID).
		Select("clock_out", "break_start", "break_end",
			"total_hours", "regular_hours", "overtime_hours",
			"status", "updated_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByBranch returns shift records for a branch ordered by clock-in
// time, newest first
func (r *GormTimeEntryArchive) FindByBranch(ctx context.Context, key branch.Key) ([]*workforce.TimeEntry, error) {
	var entryModels []models.TimeEntryModel
	if err := r.db.WithContext(ctx).
		Where("branch_key = ?", key.String()).
		Order("clock_in DESC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*workforce.TimeEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, nil
}
