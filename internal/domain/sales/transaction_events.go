package sales

import (
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for Transaction
const AggregateTypeTransaction = "Transaction"

// Transaction event type constants
const (
	EventTypeTransactionCommitted = "TransactionCommitted"
	EventTypeTransactionCompleted = "TransactionCompleted"
)

// TransactionCommittedEvent is raised when a cart is committed into a
// pending transaction
type TransactionCommittedEvent struct {
	shared.BaseDomainEvent
	TransactionID uuid.UUID       `json:"transaction_id"`
	ReceiptNumber string          `json:"receipt_number"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	CashierID     uuid.UUID       `json:"cashier_id"`
}

// NewTransactionCommittedEvent creates a new TransactionCommittedEvent
func NewTransactionCommittedEvent(t *Transaction) *TransactionCommittedEvent {
	return &TransactionCommittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionCommitted, AggregateTypeTransaction, t.ID, t.Branch.String()),
		TransactionID:   t.ID,
		ReceiptNumber:   t.ReceiptNumber,
		Total:           t.Total,
		PaymentMethod:   string(t.PaymentMethod),
		CashierID:       t.CashierID,
	}
}

// EventType returns the event type name
func (e *TransactionCommittedEvent) EventType() string {
	return EventTypeTransactionCommitted
}

// TransactionCompletedEvent is raised when fulfillment advances a
// transaction from pending to completed
type TransactionCompletedEvent struct {
	shared.BaseDomainEvent
	TransactionID uuid.UUID `json:"transaction_id"`
	ReceiptNumber string    `json:"receipt_number"`
}

// NewTransactionCompletedEvent creates a new TransactionCompletedEvent
func NewTransactionCompletedEvent(t *Transaction) *TransactionCompletedEvent {
	return &TransactionCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionCompleted, AggregateTypeTransaction, t.ID, t.Branch.String()),
		TransactionID:   t.ID,
		ReceiptNumber:   t.ReceiptNumber,
	}
}

// EventType returns the event type name
func (e *TransactionCompletedEvent) EventType() string {
	return EventTypeTransactionCompleted
}
