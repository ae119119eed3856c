package endofday

import (
	"time"

	"github.com/branchpos/backend/internal/domain/endofday"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockCheckItemResponse is one count line with its derived variance
type StockCheckItemResponse struct {
	ItemID        uuid.UUID       `json:"item_id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	Expected      decimal.Decimal `json:"expected"`
	Actual        decimal.Decimal `json:"actual"`
	Notes         string          `json:"notes,omitempty"`
	Difference    decimal.Decimal `json:"difference"`
	VarianceValue decimal.Decimal `json:"variance_value"`
}

func toStockCheckItemResponse(i endofday.StockCheckItem) StockCheckItemResponse {
	return StockCheckItemResponse{
		ItemID:        i.ItemID,
		Name:          i.Name,
		Unit:          i.Unit,
		UnitCost:      i.UnitCost,
		Expected:      i.Expected,
		Actual:        i.Actual,
		Notes:         i.Notes,
		Difference:    i.Difference(),
		VarianceValue: i.VarianceValue(),
	}
}

// StockCheckResponse is the counting session representation
type StockCheckResponse struct {
	ID            uuid.UUID                `json:"id"`
	Items         []StockCheckItemResponse `json:"items"`
	TotalVariance decimal.Decimal          `json:"total_variance"`
	StartedAt     time.Time                `json:"started_at"`
	CompletedAt   *time.Time               `json:"completed_at,omitempty"`
}

// ToStockCheckResponse converts a stock check to its response
// representation
func ToStockCheckResponse(s *endofday.StockCheck) StockCheckResponse {
	items := make([]StockCheckItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, toStockCheckItemResponse(item))
	}
	return StockCheckResponse{
		ID:            s.ID,
		Items:         items,
		TotalVariance: s.TotalVariance(),
		StartedAt:     s.StartedAt,
		CompletedAt:   s.CompletedAt,
	}
}

// CashCountRequest submits the physical drawer count
type CashCountRequest struct {
	Breakdown endofday.DenominationBreakdown `json:"breakdown" binding:"required"`
}

// CashReconciliationResponse is the drawer reconciliation result
type CashReconciliationResponse struct {
	ID           uuid.UUID                      `json:"id"`
	OpeningFloat decimal.Decimal                `json:"opening_float"`
	CashSales    decimal.Decimal                `json:"cash_sales"`
	PettyCashIn  decimal.Decimal                `json:"petty_cash_in"`
	PettyCashOut decimal.Decimal                `json:"petty_cash_out"`
	Expected     decimal.Decimal                `json:"expected"`
	Counted      decimal.Decimal                `json:"counted"`
	Breakdown    endofday.DenominationBreakdown `json:"breakdown"`
	Discrepancy  decimal.Decimal                `json:"discrepancy"`
	Balanced     bool                           `json:"balanced"`
	Status       string                         `json:"status"`
	Notes        string                         `json:"notes,omitempty"`
	CompletedAt  *time.Time                     `json:"completed_at,omitempty"`
}

// ToCashReconciliationResponse converts a reconciliation to its response
// representation
func ToCashReconciliationResponse(c *endofday.CashReconciliation) CashReconciliationResponse {
	return CashReconciliationResponse{
		ID:           c.ID,
		OpeningFloat: c.OpeningFloat,
		CashSales:    c.CashSales,
		PettyCashIn:  c.PettyCashIn,
		PettyCashOut: c.PettyCashOut,
		Expected:     c.Expected,
		Counted:      c.Counted,
		Breakdown:    c.Breakdown,
		Discrepancy:  c.Discrepancy,
		Balanced:     c.IsBalanced(),
		Status:       c.Status.String(),
		Notes:        c.Notes,
		CompletedAt:  c.CompletedAt,
	}
}

// PettyCashRequest records a mid-day drawer adjustment
type PettyCashRequest struct {
	Direction string          `json:"direction" binding:"required,oneof=in out"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Reason    string          `json:"reason"`
}

// ReportResponse is the close-of-day report representation
type ReportResponse struct {
	ID                 uuid.UUID                  `json:"id"`
	BusinessDate       time.Time                  `json:"business_date"`
	TransactionCount   int                        `json:"transaction_count"`
	GrossRevenue       decimal.Decimal            `json:"gross_revenue"`
	TotalTax           decimal.Decimal            `json:"total_tax"`
	TotalTips          decimal.Decimal            `json:"total_tips"`
	ByPaymentMethod    map[string]decimal.Decimal `json:"by_payment_method"`
	StockDiscrepancies []StockCheckItemResponse   `json:"stock_discrepancies"`
	StockVariance      decimal.Decimal            `json:"stock_variance"`
	CashDiscrepancy    decimal.Decimal            `json:"cash_discrepancy"`
	CashBalanced       bool                       `json:"cash_balanced"`
	RequiresAttention  bool                       `json:"requires_attention"`
	GeneratedAt        time.Time                  `json:"generated_at"`
}

// ToReportResponse converts a report to its response representation
func ToReportResponse(r *endofday.Report) ReportResponse {
	discrepancies := make([]StockCheckItemResponse, 0, len(r.StockDiscrepancies))
	for _, item := range r.StockDiscrepancies {
		discrepancies = append(discrepancies, toStockCheckItemResponse(item))
	}
	byMethod := make(map[string]decimal.Decimal, len(r.Sales.ByPaymentMethod))
	for method, amount := range r.Sales.ByPaymentMethod {
		byMethod[string(method)] = amount
	}
	return ReportResponse{
		ID:                 r.ID,
		BusinessDate:       r.BusinessDate,
		TransactionCount:   r.Sales.TransactionCount,
		GrossRevenue:       r.Sales.GrossRevenue,
		TotalTax:           r.Sales.TotalTax,
		TotalTips:          r.Sales.TotalTips,
		ByPaymentMethod:    byMethod,
		StockDiscrepancies: discrepancies,
		StockVariance:      r.StockVariance,
		CashDiscrepancy:    r.CashDiscrepancy,
		CashBalanced:       r.CashBalanced,
		RequiresAttention:  r.RequiresAttention,
		GeneratedAt:        r.GeneratedAt,
	}
}

// SessionStatusResponse reports where a branch sits in the close-of-day
// flow
type SessionStatusResponse struct {
	Phase        string                      `json:"phase"`
	OpeningFloat decimal.Decimal             `json:"opening_float"`
	StockCheck   *StockCheckResponse         `json:"stock_check,omitempty"`
	CashCount    *CashReconciliationResponse `json:"cash_count,omitempty"`
}
