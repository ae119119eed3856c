package endofday

import (
	"time"

	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for the end-of-day context
const AggregateTypeReport = "EndOfDayReport"

// End-of-day event type constants
const (
	EventTypeDayClosed = "DayClosed"
)

// DayClosedEvent is raised when a close-of-day report is archived
type DayClosedEvent struct {
	shared.BaseDomainEvent
	BusinessDate      time.Time       `json:"business_date"`
	GrossRevenue      decimal.Decimal `json:"gross_revenue"`
	CashDiscrepancy   decimal.Decimal `json:"cash_discrepancy"`
	StockVariance     decimal.Decimal `json:"stock_variance"`
	RequiresAttention bool            `json:"requires_attention"`
}

// NewDayClosedEvent creates a new DayClosedEvent
func NewDayClosedEvent(r *Report) *DayClosedEvent {
	return &DayClosedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeDayClosed, AggregateTypeReport, r.ID, r.Branch.String()),
		BusinessDate:      r.BusinessDate,
		GrossRevenue:      r.Sales.GrossRevenue,
		CashDiscrepancy:   r.CashDiscrepancy,
		StockVariance:     r.StockVariance,
		RequiresAttention: r.RequiresAttention,
	}
}

// EventType returns the event type name
func (e *DayClosedEvent) EventType() string {
	return EventTypeDayClosed
}
