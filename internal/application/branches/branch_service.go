package branches

import (
	"context"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BranchResponse is the branch registry representation
type BranchResponse struct {
	ID           uuid.UUID `json:"id"`
	Key          string    `json:"key"`
	Name         string    `json:"name"`
	Address      string    `json:"address,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	Manager      string    `json:"manager,omitempty"`
	OpeningHours string    `json:"opening_hours,omitempty"`
	Status       string    `json:"status"`
}

// ToBranchResponse converts a branch to its response representation
func ToBranchResponse(b *branch.Branch) BranchResponse {
	return BranchResponse{
		ID:           b.ID,
		Key:          b.Key.String(),
		Name:         b.Name,
		Address:      b.Address,
		Phone:        b.Phone,
		Email:        b.Email,
		Manager:      b.Manager,
		OpeningHours: b.OpeningHours,
		Status:       b.Status.String(),
	}
}

// OpenBranchRequest registers a new branch
type OpenBranchRequest struct {
	Key          string `json:"key" binding:"required,branchkey"`
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Manager      string `json:"manager"`
	OpeningHours string `json:"opening_hours"`
}

// Service provides application services for the branch registry
type Service struct {
	branches branch.Repository
	eventBus shared.EventBus
}

// NewService creates a new branch registry service
func NewService(branches branch.Repository, eventBus shared.EventBus) *Service {
	return &Service{
		branches: branches,
		eventBus: eventBus,
	}
}

// List retrieves all registered branches
func (s *Service) List(ctx context.Context) ([]BranchResponse, error) {
	all, err := s.branches.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BranchResponse, 0, len(all))
	for _, b := range all {
		out = append(out, ToBranchResponse(b))
	}
	return out, nil
}

// Get retrieves one branch by key
func (s *Service) Get(ctx context.Context, key branch.Key) (*BranchResponse, error) {
	b, err := s.branches.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	resp := ToBranchResponse(b)
	return &resp, nil
}

// Open registers a new branch and publishes its opening event
func (s *Service) Open(ctx context.Context, req OpenBranchRequest) (*BranchResponse, error) {
	b, err := branch.NewBranch(branch.Key(req.Key), req.Name, req.Address, req.Phone, req.Email, req.Manager, req.OpeningHours)
	if err != nil {
		return nil, err
	}

	if err := s.branches.Save(ctx, b); err != nil {
		return nil, err
	}

	for _, event := range b.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	b.ClearDomainEvents()

	resp := ToBranchResponse(b)
	return &resp, nil
}

// SetStatus moves a branch between active, inactive, and maintenance
func (s *Service) SetStatus(ctx context.Context, key branch.Key, status branch.Status) (*BranchResponse, error) {
	b, err := s.branches.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := b.SetStatus(status); err != nil {
		return nil, err
	}
	if err := s.branches.Save(ctx, b); err != nil {
		return nil, err
	}
	resp := ToBranchResponse(b)
	return &resp, nil
}
