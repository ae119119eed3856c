package branch

import (
	"github.com/branchpos/backend/internal/domain/shared"
)

// Aggregate type constant for Branch
const AggregateTypeBranch = "Branch"

// Branch event type constants
const (
	EventTypeBranchOpened = "BranchOpened"
)

// BranchOpenedEvent is raised when a branch is registered
type BranchOpenedEvent struct {
	shared.BaseDomainEvent
	Name    string `json:"name"`
	Manager string `json:"manager"`
}

// NewBranchOpenedEvent creates a new BranchOpenedEvent
func NewBranchOpenedEvent(b *Branch) *BranchOpenedEvent {
	return &BranchOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBranchOpened, AggregateTypeBranch, b.ID, b.Key.String()),
		Name:            b.Name,
		Manager:         b.Manager,
	}
}

// EventType returns the event type name
func (e *BranchOpenedEvent) EventType() string {
	return EventTypeBranchOpened
}
