package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound     = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrUnauthorized = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden    = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
)

// Ledger precondition errors
var (
	ErrNoActiveBranch         = NewDomainError("NO_ACTIVE_BRANCH", "No branch selected")
	ErrNoOperator             = NewDomainError("NO_OPERATOR", "No operator authenticated")
	ErrEmptyCart              = NewDomainError("EMPTY_CART", "Cart is empty")
	ErrInvalidQuantity        = NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	ErrAlreadyClockedIn       = NewDomainError("ALREADY_CLOCKED_IN", "Employee already has an open shift today")
	ErrNotClockedIn           = NewDomainError("NOT_CLOCKED_IN", "Employee has no open shift today")
	ErrAlreadyInProgress      = NewDomainError("ALREADY_IN_PROGRESS", "A stock check session is already open")
	ErrNoActiveSession        = NewDomainError("NO_ACTIVE_SESSION", "No stock check session is open")
	ErrItemNotFound           = NewDomainError("ITEM_NOT_FOUND", "Item not found in the active session")
	ErrNotInitialized         = NewDomainError("NOT_INITIALIZED", "Cash reconciliation has not been initialized")
	ErrReconciliationRequired = NewDomainError("RECONCILIATION_REQUIRED", "Cash reconciliation must be finalized before generating the report")
)
