package identity

import (
	"context"
	"time"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/identity"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TokenIssuer mints session tokens for authenticated operators;
// implemented by the JWT service in infrastructure
type TokenIssuer interface {
	Issue(operatorID uuid.UUID, username, role string, key branch.Key) (string, time.Time, error)
}

// LoginRequest authenticates an operator at a branch register
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	PIN      string `json:"pin" binding:"required"`
	Branch   string `json:"branch" binding:"required,branchkey"`
}

// OperatorResponse is the authenticated operator representation
type OperatorResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
}

// LoginResponse carries the session token and its holder
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Operator  OperatorResponse `json:"operator"`
	Branch    string           `json:"branch"`
}

// AuthService provides application services for operator authentication
type AuthService struct {
	operators identity.Repository
	tokens    TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(operators identity.Repository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		operators: operators,
		tokens:    tokens,
	}
}

// Login verifies an operator's PIN and branch access and mints a session
// token scoped to that branch. Lookup failures and bad PINs report the
// same error so login probing learns nothing.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	key := branch.Key(req.Branch)
	if key.IsZero() {
		return nil, shared.ErrNoActiveBranch
	}

	op, err := s.operators.FindByUsername(ctx, req.Username)
	if err != nil || op == nil || !op.IsActive || !op.VerifyPIN(req.PIN) {
		return nil, shared.ErrUnauthorized
	}
	if !op.CanAccess(key) {
		return nil, shared.ErrForbidden
	}

	token, expiresAt, err := s.tokens.Issue(op.ID, op.Username, op.Role.String(), key)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Operator: OperatorResponse{
			ID:       op.ID,
			Username: op.Username,
			Name:     op.Name,
			Role:     op.Role.String(),
		},
		Branch: key.String(),
	}, nil
}

// GetOperator retrieves an operator by id
func (s *AuthService) GetOperator(ctx context.Context, id uuid.UUID) (*OperatorResponse, error) {
	op, err := s.operators.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &OperatorResponse{
		ID:       op.ID,
		Username: op.Username,
		Name:     op.Name,
		Role:     op.Role.String(),
	}, nil
}
