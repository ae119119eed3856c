package endofday

import (
	"context"
	"time"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/endofday"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Phase is a branch's position in the close-of-day flow. The flow is
// strictly ordered: stock is counted before cash, cash before the
// report, and generating the report returns the branch to idle.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseStockCheck Phase = "stock_check"
	PhaseCashCount  Phase = "cash_count"
	PhaseReport     Phase = "report"
)

// String returns the string representation of Phase
func (p Phase) String() string {
	return string(p)
}

// SalesProvider supplies the day's revenue figures; implemented by the
// transaction service
type SalesProvider interface {
	SalesSummaryFor(ctx context.Context, key branch.Key, day time.Time) (endofday.SalesSummary, error)
	CashSalesFor(ctx context.Context, key branch.Key, day time.Time) (decimal.Decimal, error)
}

// branchState is the per-branch close-of-day partition
type branchState struct {
	phase        Phase
	openingFloat decimal.Decimal
	pettyCash    []endofday.PettyCashEntry
	stockCheck   *endofday.StockCheck
	cashCount    *endofday.CashReconciliation
	reports      []*endofday.Report
}

// ReconcilerService drives the close-of-day flow for each branch
type ReconcilerService struct {
	store         *branch.PartitionStore[branchState]
	inventory     endofday.InventoryStore
	sales         SalesProvider
	reportArchive endofday.ReportArchive
	eventBus      shared.EventBus
	clock         shared.Clock
	tolerance     decimal.Decimal
}

// NewReconcilerService creates a new ReconcilerService
func NewReconcilerService(
	inventory endofday.InventoryStore,
	sales SalesProvider,
	reportArchive endofday.ReportArchive,
	eventBus shared.EventBus,
	clock shared.Clock,
	openingFloat decimal.Decimal,
	tolerance decimal.Decimal,
) *ReconcilerService {
	seed := func(branch.Key) *branchState {
		return &branchState{
			phase:        PhaseIdle,
			openingFloat: openingFloat,
			pettyCash:    make([]endofday.PettyCashEntry, 0),
			reports:      make([]*endofday.Report, 0),
		}
	}
	return &ReconcilerService{
		store:         branch.NewPartitionStore(seed),
		inventory:     inventory,
		sales:         sales,
		reportArchive: reportArchive,
		eventBus:      eventBus,
		clock:         clock,
		tolerance:     tolerance,
	}
}

// Status reports the branch's position in the close-of-day flow
func (s *ReconcilerService) Status(ctx context.Context, key branch.Key) (*SessionStatusResponse, error) {
	p, err := s.store.Get(key)
	if err != nil {
		return nil, err
	}

	var resp SessionStatusResponse
	err = p.Read(func(st *branchState) error {
		resp = SessionStatusResponse{
			Phase:        st.phase.String(),
			OpeningFloat: st.openingFloat,
		}
		if st.stockCheck != nil {
			sc := ToStockCheckResponse(st.stockCheck)
			resp.StockCheck = &sc
		}
		if st.cashCount != nil {
			cc := ToCashReconciliationResponse(st.cashCount)
			resp.CashCount = &cc
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetOpeningFloat records the drawer's opening balance for the day
func (s *ReconcilerService) SetOpeningFloat(ctx context.Context, key branch.Key, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Opening float cannot be negative")
	}
	p, err := s.store.Get(key)
	if err != nil {
		return err
	}
	return p.Update(func(st *branchState) error {
		st.openingFloat = amount
		return nil
	})
}

// RecordPettyCash records a mid-day drawer adjustment
func (s *ReconcilerService) RecordPettyCash(ctx context.Context, key branch.Key, req PettyCashRequest, recordedBy string) error {
	p, err := s.store.Get(key)
	if err != nil {
		return err
	}
	return p.Update(func(st *branchState) error {
		entry, err := endofday.NewPettyCashEntry(endofday.PettyCashDirection(req.Direction), req.Amount, req.Reason, recordedBy, s.clock.Now())
		if err != nil {
			return err
		}
		st.pettyCash = append(st.pettyCash, entry)
		return nil
	})
}

// BeginStockCheck opens the counting session over the branch's current
// inventory. Only one session runs at a time.
func (s *ReconcilerService) BeginStockCheck(ctx context.Context, key branch.Key) (*StockCheckResponse, error) {
	p, err := s.store.Get(key)
	if err != nil {
		return nil, err
	}

	items, err := s.inventory.ListItems(ctx, key)
	if err != nil {
		return nil, err
	}

	var resp StockCheckResponse
	err = p.Update(func(st *branchState) error {
		if st.phase != PhaseIdle {
			return shared.ErrAlreadyInProgress
		}
		check, err := endofday.NewStockCheck(key, items, s.clock.Now())
		if err != nil {
			return err
		}
		st.stockCheck = check
		st.cashCount = nil
		st.phase = PhaseStockCheck
		resp = ToStockCheckResponse(check)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RecordCount records one line's physical count in the open session
func (s *ReconcilerService) RecordCount(ctx context.Context, key branch.Key, itemID uuid.UUID, actual decimal.Decimal, notes string) (*StockCheckResponse, error) {
	p, err := s.store.Get(key)
	if err != nil {
		return nil, err
	}

	var resp StockCheckResponse
	err = p.Update(func(st *branchState) error {
		if st.phase != PhaseStockCheck || st.stockCheck == nil {
			return shared.ErrNoActiveSession
		}
		if err := st.stockCheck.RecordCount(itemID, actual, notes, s.clock.Now()); err != nil {
			return err
		}
		resp = ToStockCheckResponse(st.stockCheck)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CompleteStockCheck finalizes the count, writes corrected levels back
// to the inventory store, and advances the flow to the cash count
func (s *ReconcilerService) CompleteStockCheck(ctx context.Context, key branch.Key) (*StockCheckResponse, error) {
	p, err := s.store.Get(key)
	if err != nil {
		return nil, err
	}

	var resp StockCheckResponse
	err = p.Update(func(st *branchState) error {
		if st.phase != PhaseStockCheck || st.stockCheck == nil {
			return shared.ErrNoActiveSession
		}
		if err := st.stockCheck.Complete(s.clock.Now()); err != nil {
			return err
		}
		for _, item := range st.stockCheck.Discrepancies() {
			if err := s.inventory.WriteStockLevel(ctx, key, item.ItemID, item.Actual); err != nil {
				return err
			}
		}
		st.phase = PhaseCashCount
		resp = ToStockCheckResponse(st.stockCheck)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// BeginCashCount opens the drawer reconciliation once the stock check is
// complete. The expected balance is frozen here from the opening float,
// today's completed cash sales, and the petty cash log. A non-nil
// openingFloat overrides the drawer's configured float first.
func (s *ReconcilerService) BeginCashCount(ctx context.Context, key branch.Key, openingFloat *decimal.Decimal) (*CashReconciliationResponse, error) {
	p, err := s.store.Get(key)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	cashSales, err := s.sales.CashSalesFor(ctx, key, now)
	if err != nil {
		return nil, err
	}

	var resp CashReconciliationResponse
	err = p.Update(func(st *branchState) error {
		if st.phase != PhaseCashCount {
			return shared.ErrNoActiveSession
		}
		if st.cashCount != nil {
			return shared.ErrAlreadyInProgress
		}
		if openingFloat != nil {
			if openingFloat.IsNegative() {
				return shared.NewDomainError("INVALID_AMOUNT", "Opening float cannot be negative")
			}
			st.openingFloat = *openingFloat
		}
		rec, err := endofday.BeginCashReconciliation(key, st.openingFloat, cashSales, st.pettyCash, s.tolerance, now)
		if err != nil {
			return err
		}
		st.cashCount = rec
		resp = ToCashReconciliationResponse(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RecordCashCount records the physical drawer count on the open
// reconciliation and recomputes the variance
func (s *ReconcilerService) RecordCashCount(ctx context.Context, key branch.Key, req CashCountRequest) (*CashReconciliationResponse, error) {
	p, err := s.store.Get(key)
	if err != nil {
		return nil, err
	}

	var resp CashReconciliationResponse
	err = p.Update(func(st *branchState) error {
		if st.cashCount == nil {
			return shared.ErrNotInitialized
		}
		if err := st.cashCount.RecordCount(req.Breakdown, s.clock.Now()); err != nil {
			return err
		}
		resp = ToCashReconciliationResponse(st.cashCount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// FinalizeCashCount freezes the reconciliation as verified or
// discrepancy and advances the flow to the report
func (s *ReconcilerService) FinalizeCashCount(ctx context.Context, key branch.Key, notes string) (*CashReconciliationResponse, error) {
	p, err := s.store.Get(key)
	if err != nil {
		return nil, err
	}

	var resp CashReconciliationResponse
	err = p.Update(func(st *branchState) error {
		if st.cashCount == nil {
			return shared.ErrNotInitialized
		}
		if err := st.cashCount.Finalize(notes, s.clock.Now()); err != nil {
			return err
		}
		st.phase = PhaseReport
		resp = ToCashReconciliationResponse(st.cashCount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateReport assembles and archives the close-of-day report, then
// returns the branch to idle for the next business day. Both
// reconciliation steps must have run first.
func (s *ReconcilerService) GenerateReport(ctx context.Context, key branch.Key) (*ReportResponse, error) {
	p, err := s.store.Get(key)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	summary, err := s.sales.SalesSummaryFor(ctx, key, now)
	if err != nil {
		return nil, err
	}

	var report *endofday.Report
	err = p.Update(func(st *branchState) error {
		if st.phase != PhaseReport {
			return shared.ErrReconciliationRequired
		}

		var err error
		report, err = endofday.NewReport(key, now, summary, st.stockCheck, st.cashCount, now)
		if err != nil {
			return err
		}
		if err := s.reportArchive.Append(ctx, report); err != nil {
			return err
		}

		st.reports = append(st.reports, report)
		st.stockCheck = nil
		st.cashCount = nil
		st.pettyCash = st.pettyCash[:0]
		st.phase = PhaseIdle
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.eventBus.Publish(ctx, endofday.NewDayClosedEvent(report))

	resp := ToReportResponse(report)
	return &resp, nil
}

// ListReports retrieves the branch's archived close-of-day reports
func (s *ReconcilerService) ListReports(ctx context.Context, key branch.Key) ([]ReportResponse, error) {
	reports, err := s.reportArchive.FindByBranch(ctx, key)
	if err != nil {
		return nil, err
	}
	out := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, ToReportResponse(r))
	}
	return out, nil
}
