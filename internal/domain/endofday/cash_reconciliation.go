package endofday

import (
	"time"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DenominationBreakdown is a physical drawer count by bill and coin
type DenominationBreakdown struct {
	Hundreds int64 `json:"hundreds"`
	Fifties  int64 `json:"fifties"`
	Twenties int64 `json:"twenties"`
	Tens     int64 `json:"tens"`
	Fives    int64 `json:"fives"`
	Ones     int64 `json:"ones"`
	Quarters int64 `json:"quarters"`
	Dimes    int64 `json:"dimes"`
	Nickels  int64 `json:"nickels"`
	Pennies  int64 `json:"pennies"`
}

// Total values the breakdown in dollars
func (d DenominationBreakdown) Total() decimal.Decimal {
	bills := decimal.NewFromInt(d.Hundreds*100 + d.Fifties*50 + d.Twenties*20 + d.Tens*10 + d.Fives*5 + d.Ones)
	coins := decimal.NewFromInt(d.Quarters*25 + d.Dimes*10 + d.Nickels*5 + d.Pennies).Div(decimal.NewFromInt(100))
	return bills.Add(coins)
}

// PettyCashDirection marks a petty cash entry as money in or out of the
// drawer
type PettyCashDirection string

const (
	PettyCashIn  PettyCashDirection = "in"
	PettyCashOut PettyCashDirection = "out"
)

// PettyCashEntry is a mid-day drawer adjustment outside of sales
type PettyCashEntry struct {
	ID         uuid.UUID
	Direction  PettyCashDirection
	Amount     decimal.Decimal
	Reason     string
	RecordedAt time.Time
	RecordedBy string
}

// NewPettyCashEntry records a drawer adjustment
func NewPettyCashEntry(direction PettyCashDirection, amount decimal.Decimal, reason, recordedBy string, now time.Time) (PettyCashEntry, error) {
	if direction != PettyCashIn && direction != PettyCashOut {
		return PettyCashEntry{}, shared.NewDomainError("INVALID_DIRECTION", "Petty cash direction must be in or out")
	}
	if !amount.IsPositive() {
		return PettyCashEntry{}, shared.NewDomainError("INVALID_AMOUNT", "Petty cash amount must be positive")
	}
	return PettyCashEntry{
		ID:         uuid.New(),
		Direction:  direction,
		Amount:     amount,
		Reason:     reason,
		RecordedAt: now,
		RecordedBy: recordedBy,
	}, nil
}

// ReconciliationStatus represents the lifecycle of a drawer
// reconciliation
type ReconciliationStatus string

const (
	ReconciliationPending     ReconciliationStatus = "pending"
	ReconciliationVerified    ReconciliationStatus = "verified"
	ReconciliationDiscrepancy ReconciliationStatus = "discrepancy"
)

// IsValid checks if the status is a valid ReconciliationStatus
func (s ReconciliationStatus) IsValid() bool {
	switch s {
	case ReconciliationPending, ReconciliationVerified, ReconciliationDiscrepancy:
		return true
	}
	return false
}

// String returns the string representation of ReconciliationStatus
func (s ReconciliationStatus) String() string {
	return string(s)
}

// CashReconciliation compares the counted drawer against the expected
// balance for one day. The expected balance is frozen when the
// reconciliation begins; the count may be re-recorded until the record
// is finalized.
type CashReconciliation struct {
	shared.BaseEntity
	Branch       branch.Key
	OpeningFloat decimal.Decimal
	CashSales    decimal.Decimal
	PettyCashIn  decimal.Decimal
	PettyCashOut decimal.Decimal
	Expected     decimal.Decimal
	Counted      decimal.Decimal
	Breakdown    DenominationBreakdown
	Discrepancy  decimal.Decimal
	Tolerance    decimal.Decimal
	Status       ReconciliationStatus
	Notes        string
	CompletedAt  *time.Time
}

// ExpectedCash is opening float plus cash sales plus petty cash in minus
// petty cash out
func ExpectedCash(openingFloat, cashSales decimal.Decimal, petty []PettyCashEntry) decimal.Decimal {
	expected := openingFloat.Add(cashSales)
	for _, entry := range petty {
		switch entry.Direction {
		case PettyCashIn:
			expected = expected.Add(entry.Amount)
		case PettyCashOut:
			expected = expected.Sub(entry.Amount)
		}
	}
	return expected
}

// BeginCashReconciliation opens a drawer reconciliation with the
// expected balance frozen from the opening float, the day's completed
// cash sales, and the petty cash log. The count starts at zero until a
// physical count is recorded.
func BeginCashReconciliation(key branch.Key, openingFloat, cashSales decimal.Decimal, petty []PettyCashEntry, tolerance decimal.Decimal, now time.Time) (*CashReconciliation, error) {
	if key.IsZero() {
		return nil, shared.ErrNoActiveBranch
	}

	pettyIn := decimal.Zero
	pettyOut := decimal.Zero
	for _, entry := range petty {
		switch entry.Direction {
		case PettyCashIn:
			pettyIn = pettyIn.Add(entry.Amount)
		case PettyCashOut:
			pettyOut = pettyOut.Add(entry.Amount)
		}
	}

	expected := ExpectedCash(openingFloat, cashSales, petty)

	return &CashReconciliation{
		BaseEntity:   shared.NewBaseEntityAt(now),
		Branch:       key,
		OpeningFloat: openingFloat,
		CashSales:    cashSales,
		PettyCashIn:  pettyIn,
		PettyCashOut: pettyOut,
		Expected:     expected,
		Tolerance:    tolerance,
		Discrepancy:  expected.Neg(),
		Status:       ReconciliationPending,
	}, nil
}

// RecordCount overwrites the physical drawer count and recomputes the
// discrepancy as counted minus expected. Finalized records are immutable.
func (c *CashReconciliation) RecordCount(breakdown DenominationBreakdown, now time.Time) error {
	if c.IsFinalized() {
		return shared.ErrInvalidState
	}
	c.Breakdown = breakdown
	c.Counted = breakdown.Total()
	c.Discrepancy = c.Counted.Sub(c.Expected)
	c.UpdatedAt = now
	return nil
}

// Finalize freezes the record, setting the status to verified when the
// discrepancy falls within tolerance and to discrepancy otherwise
func (c *CashReconciliation) Finalize(notes string, now time.Time) error {
	if c.IsFinalized() {
		return shared.ErrInvalidState
	}
	if c.IsBalanced() {
		c.Status = ReconciliationVerified
	} else {
		c.Status = ReconciliationDiscrepancy
	}
	c.Notes = notes
	c.CompletedAt = &now
	c.UpdatedAt = now
	return nil
}

// IsFinalized reports whether the record has been frozen
func (c *CashReconciliation) IsFinalized() bool {
	return c.Status != ReconciliationPending
}

// IsBalanced reports whether the discrepancy falls within tolerance
func (c *CashReconciliation) IsBalanced() bool {
	return c.Discrepancy.Abs().LessThanOrEqual(c.Tolerance)
}
