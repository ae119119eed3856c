package pos

import (
	"time"

	"github.com/branchpos/backend/internal/domain/catalog"
	"github.com/branchpos/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductResponse is the catalog listing representation
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	IsAvailable bool            `json:"is_available"`
	PrepMinutes int             `json:"prep_minutes"`
}

// ToProductResponse converts a product to its response representation
func ToProductResponse(p catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category.String(),
		Price:       p.Price,
		Description: p.Description,
		IsAvailable: p.IsAvailable,
		PrepMinutes: p.PrepMinutes,
	}
}

// ToProductResponses converts a product slice to response representations
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}

// CartItemResponse is one cart line in a cart response
type CartItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Notes     string          `json:"notes,omitempty"`
}

// CartResponse is the current register cart with derived totals
type CartResponse struct {
	Items         []CartItemResponse `json:"items"`
	CustomerName  string             `json:"customer_name,omitempty"`
	CustomerPhone string             `json:"customer_phone,omitempty"`
	OrderType     string             `json:"order_type"`
	PaymentMethod string             `json:"payment_method"`
	Notes         string             `json:"notes,omitempty"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Tax           decimal.Decimal    `json:"tax"`
	Tip           decimal.Decimal    `json:"tip"`
	Total         decimal.Decimal    `json:"total"`
}

// toCartResponse snapshots a cart with totals derived at the given tax
// rate
func toCartResponse(c *catalog.Cart, taxRate decimal.Decimal) CartResponse {
	cfg := c.Config()
	items := c.Items()
	resp := CartResponse{
		Items:         make([]CartItemResponse, 0, len(items)),
		CustomerName:  cfg.CustomerName,
		CustomerPhone: cfg.CustomerPhone,
		OrderType:     string(cfg.OrderType),
		PaymentMethod: string(cfg.PaymentMethod),
		Notes:         cfg.Notes,
		Subtotal:      c.Subtotal(),
		Tax:           c.Tax(taxRate),
		Tip:           cfg.Tip,
		Total:         c.Total(taxRate),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, CartItemResponse{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			UnitPrice: item.Product.Price,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal,
			Notes:     item.Notes,
		})
	}
	return resp
}

// OrderConfigRequest updates the pending order configuration
type OrderConfigRequest struct {
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	OrderType     string          `json:"order_type" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Notes         string          `json:"notes"`
	Tip           decimal.Decimal `json:"tip"`
}

// TransactionResponse is the committed transaction representation
type TransactionResponse struct {
	ID            uuid.UUID          `json:"id"`
	ReceiptNumber string             `json:"receipt_number"`
	Items         []CartItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Tax           decimal.Decimal    `json:"tax"`
	Tip           decimal.Decimal    `json:"tip"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	OrderType     string             `json:"order_type"`
	CustomerName  string             `json:"customer_name,omitempty"`
	CashierName   string             `json:"cashier_name"`
	Status        string             `json:"status"`
	Timestamp     time.Time          `json:"timestamp"`
}

// ToTransactionResponse converts a transaction to its response
// representation
func ToTransactionResponse(t *sales.Transaction) TransactionResponse {
	items := make([]CartItemResponse, 0, len(t.Items))
	for _, item := range t.Items {
		items = append(items, CartItemResponse{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			UnitPrice: item.Product.Price,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal,
			Notes:     item.Notes,
		})
	}
	return TransactionResponse{
		ID:            t.ID,
		ReceiptNumber: t.ReceiptNumber,
		Items:         items,
		Subtotal:      t.Subtotal,
		Tax:           t.Tax,
		Tip:           t.Tip,
		Total:         t.Total,
		PaymentMethod: string(t.PaymentMethod),
		OrderType:     string(t.OrderType),
		CustomerName:  t.CustomerName,
		CashierName:   t.CashierName,
		Status:        t.Status.String(),
		Timestamp:     t.Timestamp,
	}
}

// ToTransactionResponses converts a transaction slice to response
// representations
func ToTransactionResponses(txs []*sales.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}

// DailySummaryResponse is the register's rollup for one business day
type DailySummaryResponse struct {
	Date            time.Time                  `json:"date"`
	OrderCount      int                        `json:"order_count"`
	Revenue         decimal.Decimal            `json:"revenue"`
	TotalTax        decimal.Decimal            `json:"total_tax"`
	TotalTips       decimal.Decimal            `json:"total_tips"`
	ByPaymentMethod map[string]decimal.Decimal `json:"by_payment_method"`
}
