package endofday

import (
	"context"
	"time"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/catalog"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SalesSummary is the day's revenue rollup for the report
type SalesSummary struct {
	TransactionCount int
	GrossRevenue     decimal.Decimal
	TotalTax         decimal.Decimal
	TotalTips        decimal.Decimal
	ByPaymentMethod  map[catalog.PaymentMethod]decimal.Decimal
}

// Report is the immutable close-of-day record for one branch and one
// business day. Building it requires a completed stock check and a cash
// reconciliation; once archived it is never modified.
type Report struct {
	shared.BaseEntity
	Branch             branch.Key
	BusinessDate       time.Time
	Sales              SalesSummary
	StockDiscrepancies []StockCheckItem
	StockVariance      decimal.Decimal
	CashDiscrepancy    decimal.Decimal
	CashBalanced       bool
	RequiresAttention  bool
	GeneratedAt        time.Time
}

// NewReport assembles the close-of-day record from the two completed
// reconciliation steps. The report requires attention when any stock
// line differs from expectation or the drawer is out of tolerance.
func NewReport(key branch.Key, businessDate time.Time, sales SalesSummary, stock *StockCheck, cash *CashReconciliation, now time.Time) (*Report, error) {
	if key.IsZero() {
		return nil, shared.ErrNoActiveBranch
	}
	if stock == nil || !stock.IsComplete() || cash == nil || !cash.IsFinalized() {
		return nil, shared.ErrReconciliationRequired
	}

	discrepancies := stock.Discrepancies()
	balanced := cash.Status == ReconciliationVerified

	return &Report{
		BaseEntity:         shared.NewBaseEntityAt(now),
		Branch:             key,
		BusinessDate:       shared.DateOf(businessDate),
		Sales:              sales,
		StockDiscrepancies: discrepancies,
		StockVariance:      stock.TotalVariance(),
		CashDiscrepancy:    cash.Discrepancy,
		CashBalanced:       balanced,
		RequiresAttention:  len(discrepancies) > 0 || !balanced,
		GeneratedAt:        now,
	}, nil
}

// ReportArchive is the append-only persistence sink for close-of-day
// reports
type ReportArchive interface {
	Append(ctx context.Context, report *Report) error
	FindByBranch(ctx context.Context, key branch.Key) ([]*Report, error)
}
