package endofday

import (
	"context"
	"time"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is a stock-keeping entry a branch counts at close of day
type InventoryItem struct {
	ID       uuid.UUID
	Name     string
	Unit     string
	UnitCost decimal.Decimal
	Quantity decimal.Decimal
}

// InventoryStore is the stock-level collaborator the reconciler reads
// expected quantities from and writes corrected counts back to
type InventoryStore interface {
	ListItems(ctx context.Context, key branch.Key) ([]InventoryItem, error)
	WriteStockLevel(ctx context.Context, key branch.Key, itemID uuid.UUID, quantity decimal.Decimal) error
}

// StockCheckItem is one count line. Expected comes from the inventory
// store; Actual starts equal to Expected and is overwritten by the
// physical count.
type StockCheckItem struct {
	ItemID   uuid.UUID
	Name     string
	Unit     string
	UnitCost decimal.Decimal
	Expected decimal.Decimal
	Actual   decimal.Decimal
	Notes    string
}

// Difference is the counted quantity minus the expected quantity
func (i StockCheckItem) Difference() decimal.Decimal {
	return i.Actual.Sub(i.Expected)
}

// VarianceValue is the difference priced at unit cost; negative for
// shrinkage
func (i StockCheckItem) VarianceValue() decimal.Decimal {
	return i.Difference().Mul(i.UnitCost)
}

// StockCheck is the counting step of an end-of-day session. Counts are
// recorded per item and the session is finalized once.
type StockCheck struct {
	shared.BaseEntity
	Branch      branch.Key
	Items       []StockCheckItem
	StartedAt   time.Time
	CompletedAt *time.Time
}

// NewStockCheck opens a count over the given inventory, seeding each
// actual quantity with the expected one so an untouched line counts as
// confirmed.
func NewStockCheck(key branch.Key, inventory []InventoryItem, now time.Time) (*StockCheck, error) {
	if key.IsZero() {
		return nil, shared.ErrNoActiveBranch
	}

	check := &StockCheck{
		BaseEntity: shared.NewBaseEntityAt(now),
		Branch:     key,
		Items:      make([]StockCheckItem, 0, len(inventory)),
		StartedAt:  now,
	}
	for _, item := range inventory {
		check.Items = append(check.Items, StockCheckItem{
			ItemID:   item.ID,
			Name:     item.Name,
			Unit:     item.Unit,
			UnitCost: item.UnitCost,
			Expected: item.Quantity,
			Actual:   item.Quantity,
		})
	}
	return check, nil
}

// IsComplete reports whether the count has been finalized
func (s *StockCheck) IsComplete() bool {
	return s.CompletedAt != nil
}

// RecordCount overwrites one line's actual quantity with the physical
// count, with an optional note about the line
func (s *StockCheck) RecordCount(itemID uuid.UUID, actual decimal.Decimal, notes string, now time.Time) error {
	if s.IsComplete() {
		return shared.ErrInvalidState
	}
	if actual.IsNegative() {
		return shared.ErrInvalidQuantity
	}
	for i := range s.Items {
		if s.Items[i].ItemID == itemID {
			s.Items[i].Actual = actual
			s.Items[i].Notes = notes
			s.UpdatedAt = now
			return nil
		}
	}
	return shared.ErrItemNotFound
}

// Complete finalizes the count
func (s *StockCheck) Complete(now time.Time) error {
	if s.IsComplete() {
		return shared.ErrInvalidState
	}
	s.CompletedAt = &now
	s.UpdatedAt = now
	return nil
}

// Discrepancies returns the lines whose counted quantity differs from
// the expected one
func (s *StockCheck) Discrepancies() []StockCheckItem {
	out := make([]StockCheckItem, 0)
	for _, item := range s.Items {
		if !item.Difference().IsZero() {
			out = append(out, item)
		}
	}
	return out
}

// TotalVariance is the sum of all priced variances
func (s *StockCheck) TotalVariance() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.VarianceValue())
	}
	return total
}
