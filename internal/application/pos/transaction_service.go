package pos

import (
	"context"
	"time"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/catalog"
	"github.com/branchpos/backend/internal/domain/endofday"
	"github.com/branchpos/backend/internal/domain/sales"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultRecentLimit is how many transactions ListRecent returns when no
// limit is given
const DefaultRecentLimit = 10

// TransactionService provides application services for committing and
// tracking sales transactions
type TransactionService struct {
	registers *Registers
	archive   sales.Archive
	eventBus  shared.EventBus
	scheduler *FulfillmentScheduler
	clock     shared.Clock
	taxRate   decimal.Decimal
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	registers *Registers,
	archive sales.Archive,
	eventBus shared.EventBus,
	scheduler *FulfillmentScheduler,
	clock shared.Clock,
	taxRate decimal.Decimal,
) *TransactionService {
	return &TransactionService{
		registers: registers,
		archive:   archive,
		eventBus:  eventBus,
		scheduler: scheduler,
		clock:     clock,
		taxRate:   taxRate,
	}
}

// Commit turns the branch's cart into a pending transaction. Receipt
// issuance, the cart snapshot, the log append, and the cart clear happen
// in one critical section, so concurrent commits on the same branch
// cannot interleave. Fulfillment is scheduled after the section ends.
func (s *TransactionService) Commit(ctx context.Context, key branch.Key, cashierID uuid.UUID, cashierName string) (*TransactionResponse, error) {
	p, err := s.registers.partition(ctx, key)
	if err != nil {
		return nil, err
	}

	var tx *sales.Transaction
	err = p.Update(func(st *branchState) error {
		now := s.clock.Now()
		receipt := st.receipts.Next(now)

		var err error
		tx, err = sales.NewTransaction(key, receipt, st.cart, s.taxRate, cashierID, cashierName, now)
		if err != nil {
			return err
		}
		if err := s.archive.Append(ctx, tx); err != nil {
			return err
		}

		st.transactions = append(st.transactions, tx)
		st.cart.Clear()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, tx)
	s.scheduler.Schedule(tx.ID, func() {
		s.completeFulfillment(key, tx.ID)
	})

	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// completeFulfillment runs on the fulfillment timer goroutine and
// advances the transaction inside the branch's critical section. A
// transaction that already left pending is left untouched.
func (s *TransactionService) completeFulfillment(key branch.Key, txID uuid.UUID) {
	ctx := context.Background()
	p, err := s.registers.partition(ctx, key)
	if err != nil {
		return
	}

	var tx *sales.Transaction
	_ = p.Update(func(st *branchState) error {
		t := findTransaction(st.transactions, txID)
		if t == nil {
			return shared.ErrNotFound
		}
		if err := t.Complete(s.clock.Now()); err != nil {
			return err
		}
		tx = t
		return s.archive.UpdateStatus(ctx, t.ID, t.Status)
	})
	if tx != nil {
		s.publishEvents(ctx, tx)
	}
}

// Cancel cancels a pending transaction and disarms its fulfillment timer
func (s *TransactionService) Cancel(ctx context.Context, key branch.Key, txID uuid.UUID) (*TransactionResponse, error) {
	p, err := s.registers.partition(ctx, key)
	if err != nil {
		return nil, err
	}

	var tx *sales.Transaction
	err = p.Update(func(st *branchState) error {
		t := findTransaction(st.transactions, txID)
		if t == nil {
			return shared.ErrNotFound
		}
		if err := t.TransitionTo(sales.StatusCancelled, s.clock.Now()); err != nil {
			return err
		}
		tx = t
		return s.archive.UpdateStatus(ctx, t.ID, t.Status)
	})
	if err != nil {
		return nil, err
	}

	s.scheduler.Cancel(txID)

	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// GetByID retrieves one of the branch's transactions
func (s *TransactionService) GetByID(ctx context.Context, key branch.Key, txID uuid.UUID) (*TransactionResponse, error) {
	p, err := s.registers.partition(ctx, key)
	if err != nil {
		return nil, err
	}

	var resp TransactionResponse
	err = p.Read(func(st *branchState) error {
		t := findTransaction(st.transactions, txID)
		if t == nil {
			return shared.ErrNotFound
		}
		resp = ToTransactionResponse(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListRecent retrieves the branch's latest transactions, newest first. A
// non-positive limit falls back to DefaultRecentLimit.
func (s *TransactionService) ListRecent(ctx context.Context, key branch.Key, limit int) ([]TransactionResponse, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	p, err := s.registers.partition(ctx, key)
	if err != nil {
		return nil, err
	}

	var out []TransactionResponse
	err = p.Read(func(st *branchState) error {
		n := len(st.transactions)
		if limit > n {
			limit = n
		}
		out = make([]TransactionResponse, 0, limit)
		for i := n - 1; i >= n-limit; i-- {
			out = append(out, ToTransactionResponse(st.transactions[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DailySummary aggregates the branch's completed transactions for one
// business day
func (s *TransactionService) DailySummary(ctx context.Context, key branch.Key, day time.Time) (*DailySummaryResponse, error) {
	summary, err := s.salesSummary(ctx, key, day)
	if err != nil {
		return nil, err
	}

	resp := &DailySummaryResponse{
		Date:            shared.DateOf(day),
		OrderCount:      summary.TransactionCount,
		Revenue:         summary.GrossRevenue,
		TotalTax:        summary.TotalTax,
		TotalTips:       summary.TotalTips,
		ByPaymentMethod: make(map[string]decimal.Decimal, len(summary.ByPaymentMethod)),
	}
	for method, amount := range summary.ByPaymentMethod {
		resp.ByPaymentMethod[string(method)] = amount
	}
	return resp, nil
}

// SalesSummaryFor returns the day's rollup in the form the end-of-day
// reconciler consumes
func (s *TransactionService) SalesSummaryFor(ctx context.Context, key branch.Key, day time.Time) (endofday.SalesSummary, error) {
	return s.salesSummary(ctx, key, day)
}

// CashSalesFor returns the day's cash-paid revenue, the figure the
// drawer reconciliation expects to find
func (s *TransactionService) CashSalesFor(ctx context.Context, key branch.Key, day time.Time) (decimal.Decimal, error) {
	summary, err := s.salesSummary(ctx, key, day)
	if err != nil {
		return decimal.Zero, err
	}
	return summary.ByPaymentMethod[catalog.PaymentCash], nil
}

func (s *TransactionService) salesSummary(ctx context.Context, key branch.Key, day time.Time) (endofday.SalesSummary, error) {
	p, err := s.registers.partition(ctx, key)
	if err != nil {
		return endofday.SalesSummary{}, err
	}

	summary := endofday.SalesSummary{
		ByPaymentMethod: make(map[catalog.PaymentMethod]decimal.Decimal),
	}
	// only completed sales count toward the day; pending and cancelled
	// transactions never reach revenue or the drawer expectation
	err = p.Read(func(st *branchState) error {
		for _, t := range st.transactions {
			if t.Status != sales.StatusCompleted || !t.IsOn(day) {
				continue
			}
			summary.TransactionCount++
			summary.GrossRevenue = summary.GrossRevenue.Add(t.Total)
			summary.TotalTax = summary.TotalTax.Add(t.Tax)
			summary.TotalTips = summary.TotalTips.Add(t.Tip)
			summary.ByPaymentMethod[t.PaymentMethod] = summary.ByPaymentMethod[t.PaymentMethod].Add(t.Total)
		}
		return nil
	})
	if err != nil {
		return endofday.SalesSummary{}, err
	}
	return summary, nil
}

// publishEvents drains an aggregate's domain events onto the bus
func (s *TransactionService) publishEvents(ctx context.Context, tx *sales.Transaction) {
	for _, event := range tx.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	tx.ClearDomainEvents()
}

func findTransaction(txs []*sales.Transaction, id uuid.UUID) *sales.Transaction {
	for _, t := range txs {
		if t.ID == id {
			return t
		}
	}
	return nil
}
