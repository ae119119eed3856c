package pos

import (
	"context"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/catalog"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartService provides application services for building an order at a
// branch register
type CartService struct {
	registers *Registers
	taxRate   decimal.Decimal
}

// NewCartService creates a new CartService
func NewCartService(registers *Registers, taxRate decimal.Decimal) *CartService {
	return &CartService{
		registers: registers,
		taxRate:   taxRate,
	}
}

// ListProducts retrieves the branch's available products matching the
// filter
func (s *CartService) ListProducts(ctx context.Context, key branch.Key, filter catalog.Filter) ([]ProductResponse, error) {
	p, err := s.registers.partition(ctx, key)
	if err != nil {
		return nil, err
	}

	var products []catalog.Product
	err = p.Read(func(st *branchState) error {
		products = st.catalog.ListAvailable(filter)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// GetCart retrieves the branch's current cart with derived totals
func (s *CartService) GetCart(ctx context.Context, key branch.Key) (*CartResponse, error) {
	p, err := s.registers.partition(ctx, key)
	if err != nil {
		return nil, err
	}

	var resp CartResponse
	err = p.Read(func(st *branchState) error {
		resp = toCartResponse(st.cart, s.taxRate)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddItem adds a quantity of a catalog product to the branch's cart
func (s *CartService) AddItem(ctx context.Context, key branch.Key, productID uuid.UUID, quantity int64) (*CartResponse, error) {
	return s.mutate(ctx, key, func(st *branchState) error {
		product, ok := st.catalog.Find(productID)
		if !ok || !product.IsAvailable {
			return shared.ErrItemNotFound
		}
		return st.cart.AddItem(product, quantity)
	})
}

// SetQuantity updates a cart line's quantity; zero removes the line
func (s *CartService) SetQuantity(ctx context.Context, key branch.Key, productID uuid.UUID, quantity int64) (*CartResponse, error) {
	return s.mutate(ctx, key, func(st *branchState) error {
		st.cart.SetQuantity(productID, quantity)
		return nil
	})
}

// SetItemNotes attaches a preparation note to a cart line
func (s *CartService) SetItemNotes(ctx context.Context, key branch.Key, productID uuid.UUID, notes string) (*CartResponse, error) {
	return s.mutate(ctx, key, func(st *branchState) error {
		st.cart.SetItemNotes(productID, notes)
		return nil
	})
}

// RemoveItem removes a cart line
func (s *CartService) RemoveItem(ctx context.Context, key branch.Key, productID uuid.UUID) (*CartResponse, error) {
	return s.mutate(ctx, key, func(st *branchState) error {
		st.cart.RemoveItem(productID)
		return nil
	})
}

// UpdateOrderConfig replaces the pending order configuration
func (s *CartService) UpdateOrderConfig(ctx context.Context, key branch.Key, req OrderConfigRequest) (*CartResponse, error) {
	return s.mutate(ctx, key, func(st *branchState) error {
		return st.cart.UpdateConfig(catalog.OrderConfig{
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			OrderType:     catalog.OrderType(req.OrderType),
			PaymentMethod: catalog.PaymentMethod(req.PaymentMethod),
			Notes:         req.Notes,
			Tip:           req.Tip,
		})
	})
}

// ClearCart discards the cart and resets the order configuration
func (s *CartService) ClearCart(ctx context.Context, key branch.Key) (*CartResponse, error) {
	return s.mutate(ctx, key, func(st *branchState) error {
		st.cart.Clear()
		return nil
	})
}

// mutate runs fn in the branch's critical section and returns the
// resulting cart snapshot
func (s *CartService) mutate(ctx context.Context, key branch.Key, fn func(st *branchState) error) (*CartResponse, error) {
	p, err := s.registers.partition(ctx, key)
	if err != nil {
		return nil, err
	}

	var resp CartResponse
	err = p.Update(func(st *branchState) error {
		if err := fn(st); err != nil {
			return err
		}
		resp = toCartResponse(st.cart, s.taxRate)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
