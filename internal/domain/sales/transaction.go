package sales

import (
	"context"
	"time"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/catalog"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the fulfillment status of a transaction
type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target
// status. Transitions only move forward; completed and cancelled are
// terminal.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusPreparing || target == StatusReady || target == StatusCompleted || target == StatusCancelled
	case StatusPreparing:
		return target == StatusReady || target == StatusCompleted || target == StatusCancelled
	case StatusReady:
		return target == StatusCompleted || target == StatusCancelled
	case StatusCompleted, StatusCancelled:
		return false
	}
	return false
}

// Transaction is an immutable record of a committed sale. Only the status
// field changes after creation, and only forward. Once appended to a
// branch's transaction log it is never removed.
type Transaction struct {
	shared.BaseAggregateRoot
	ReceiptNumber string
	Branch        branch.Key
	Items         []catalog.CartItem
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Tip           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod catalog.PaymentMethod
	OrderType     catalog.OrderType
	CustomerName  string
	CustomerPhone string
	Notes         string
	CashierID     uuid.UUID
	CashierName   string
	Status        Status
	Timestamp     time.Time
}

// NewTransaction snapshots a non-empty cart into a pending transaction.
// Tax is derived from the subtotal and rate so the total = subtotal + tax
// + tip invariant holds by construction.
func NewTransaction(key branch.Key, receiptNumber string, cart *catalog.Cart, taxRate decimal.Decimal, cashierID uuid.UUID, cashierName string, now time.Time) (*Transaction, error) {
	if key.IsZero() {
		return nil, shared.ErrNoActiveBranch
	}
	if cart.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}
	if cashierID == uuid.Nil {
		return nil, shared.ErrNoOperator
	}
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}

	cfg := cart.Config()
	subtotal := cart.Subtotal()
	tax := subtotal.Mul(taxRate)

	tx := &Transaction{
		BaseAggregateRoot: shared.NewBaseAggregateRootAt(now),
		ReceiptNumber:     receiptNumber,
		Branch:            key,
		Items:             cart.Items(),
		Subtotal:          subtotal,
		Tax:               tax,
		Tip:               cfg.Tip,
		Total:             subtotal.Add(tax).Add(cfg.Tip),
		PaymentMethod:     cfg.PaymentMethod,
		OrderType:         cfg.OrderType,
		CustomerName:      cfg.CustomerName,
		CustomerPhone:     cfg.CustomerPhone,
		Notes:             cfg.Notes,
		CashierID:         cashierID,
		CashierName:       cashierName,
		Status:            StatusPending,
		Timestamp:         now,
	}

	tx.AddDomainEvent(NewTransactionCommittedEvent(tx))

	return tx, nil
}

// TransitionTo advances the status, rejecting backward moves
func (t *Transaction) TransitionTo(target Status, now time.Time) error {
	if !t.Status.CanTransitionTo(target) {
		return shared.ErrInvalidState
	}
	t.Status = target
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// Complete advances pending to completed. The fulfillment callback calls
// this exactly once; a transaction that already left pending is left
// untouched.
func (t *Transaction) Complete(now time.Time) error {
	if t.Status != StatusPending {
		return shared.ErrInvalidState
	}
	t.Status = StatusCompleted
	t.UpdatedAt = now
	t.IncrementVersion()
	t.AddDomainEvent(NewTransactionCompletedEvent(t))
	return nil
}

// IsOn reports whether the transaction falls on the given calendar day
func (t *Transaction) IsOn(day time.Time) bool {
	return shared.SameDay(t.Timestamp, day)
}

// Archive is the append-only persistence sink for committed transactions
type Archive interface {
	Append(ctx context.Context, tx *Transaction) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}
