package catalog

import (
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderType classifies how an order is fulfilled
type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine-in"
	OrderTypeTakeout  OrderType = "takeout"
	OrderTypeDelivery OrderType = "delivery"
)

// IsValid checks if the order type is a valid OrderType
func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeout, OrderTypeDelivery:
		return true
	}
	return false
}

// PaymentMethod classifies how an order is paid
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
)

// IsValid checks if the payment method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobile:
		return true
	}
	return false
}

// CartItem is one cart line: a product snapshot with quantity and the
// derived subtotal
type CartItem struct {
	Product  Product
	Quantity int64
	Subtotal decimal.Decimal
	Notes    string
}

// OrderConfig is the pending order configuration that rides alongside the
// cart until commit
type OrderConfig struct {
	CustomerName  string
	CustomerPhone string
	OrderType     OrderType
	PaymentMethod PaymentMethod
	Notes         string
	Tip           decimal.Decimal
}

// DefaultOrderConfig returns the configuration a fresh cart starts with
func DefaultOrderConfig() OrderConfig {
	return OrderConfig{
		OrderType:     OrderTypeTakeout,
		PaymentMethod: PaymentCash,
		Tip:           decimal.Zero,
	}
}

// Cart is the mutable order being assembled for one branch. It is owned
// exclusively by the current order workflow and cleared atomically when a
// transaction is committed or explicitly discarded.
type Cart struct {
	items  []CartItem
	config OrderConfig
}

// NewCart creates an empty cart with default order configuration
func NewCart() *Cart {
	return &Cart{
		items:  make([]CartItem, 0),
		config: DefaultOrderConfig(),
	}
}

// Items returns the cart lines in insertion order
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Config returns the pending order configuration
func (c *Cart) Config() OrderConfig {
	return c.config
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// AddItem merges quantity into an existing line for the same product id,
// or appends a new line. The product is snapshotted by value.
func (c *Cart) AddItem(p Product, quantity int64) error {
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}

	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Quantity += quantity
			c.items[i].Subtotal = c.items[i].Product.Price.Mul(decimal.NewFromInt(c.items[i].Quantity))
			return nil
		}
	}

	c.items = append(c.items, CartItem{
		Product:  p,
		Quantity: quantity,
		Subtotal: p.Price.Mul(decimal.NewFromInt(quantity)),
	})
	return nil
}

// SetQuantity updates a line's quantity and subtotal; a quantity of zero
// or less removes the line
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int64) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = quantity
			c.items[i].Subtotal = c.items[i].Product.Price.Mul(decimal.NewFromInt(quantity))
			return
		}
	}
}

// SetItemNotes attaches a note to a line; no-op if the line is absent
func (c *Cart) SetItemNotes(productID uuid.UUID, notes string) {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Notes = notes
			return
		}
	}
}

// RemoveItem removes a line; no-op if absent
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateConfig replaces the pending order configuration after validating
// its enums
func (c *Cart) UpdateConfig(cfg OrderConfig) error {
	if !cfg.OrderType.IsValid() {
		return shared.NewDomainError("INVALID_ORDER_TYPE", "Unknown order type")
	}
	if !cfg.PaymentMethod.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if cfg.Tip.IsNegative() {
		return shared.NewDomainError("INVALID_TIP", "Tip cannot be negative")
	}
	c.config = cfg
	return nil
}

// Clear empties the cart and resets the order configuration to defaults
func (c *Cart) Clear() {
	c.items = c.items[:0]
	c.config = DefaultOrderConfig()
}

// Subtotal is the sum of line subtotals
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.items {
		sum = sum.Add(item.Subtotal)
	}
	return sum
}

// Tax is subtotal multiplied by the configured rate
func (c *Cart) Tax(rate decimal.Decimal) decimal.Decimal {
	return c.Subtotal().Mul(rate)
}

// Total is subtotal + tax + tip
func (c *Cart) Total(taxRate decimal.Decimal) decimal.Decimal {
	return c.Subtotal().Add(c.Tax(taxRate)).Add(c.config.Tip)
}
