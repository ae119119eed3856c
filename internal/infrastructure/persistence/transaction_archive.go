package persistence

import (
	"context"
	"errors"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/sales"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/branchpos/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTransactionArchive implements sales.Archive using GORM. Rows are
// append-only except for the fulfillment status column.
type GormTransactionArchive struct {
	db *gorm.DB
}

// NewGormTransactionArchive creates a new GormTransactionArchive
func NewGormTransactionArchive(db *gorm.DB) *GormTransactionArchive {
	return &GormTransactionArchive{db: db}
}

// Append writes a committed transaction to the ledger
func (r *GormTransactionArchive) Append(ctx context.Context, tx *sales.Transaction) error {
	model, err := models.TransactionModelFromDomain(tx)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// UpdateStatus moves a ledger row to a new fulfillment status
func (r *GormTransactionArchive) UpdateStatus(ctx context.Context, id uuid.UUID, status sales.Status) error {
	result := r.db.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Where("id = ?", id).
		Update("status", status.String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByBranch returns archived transactions for a branch, newest first
func (r *GormTransactionArchive) FindByBranch(ctx context.Context, key branch.Key, limit int) ([]*sales.Transaction, error) {
	query := r.db.WithContext(ctx).
		Where("branch_key = ?", key.String()).
		Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var txModels []models.TransactionModel
	if err := query.Find(&txModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*sales.Transaction, 0, len(txModels))
	for i := range txModels {
		tx, err := txModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

// FindByReceiptNumber looks up a single transaction by its receipt
func (r *GormTransactionArchive) FindByReceiptNumber(ctx context.Context, receipt string) (*sales.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).First(&model, "receipt_number = ?", receipt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}
