package identity

import (
	"context"
	"testing"
	"time"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/identity"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOperatorRepo struct {
	operators map[string]*identity.Operator
}

func (r *stubOperatorRepo) FindByUsername(_ context.Context, username string) (*identity.Operator, error) {
	op, ok := r.operators[username]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return op, nil
}

func (r *stubOperatorRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Operator, error) {
	for _, op := range r.operators {
		if op.ID == id {
			return op, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubOperatorRepo) Save(_ context.Context, op *identity.Operator) error {
	r.operators[op.Username] = op
	return nil
}

type stubTokenIssuer struct{}

func (stubTokenIssuer) Issue(_ uuid.UUID, username, _ string, key branch.Key) (string, time.Time, error) {
	return "token-" + username + "-" + key.String(), time.Now().Add(time.Hour), nil
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	newService := func(t *testing.T) (*AuthService, *identity.Operator) {
		t.Helper()
		op, err := identity.NewOperator("amara", "Amara", identity.OperatorRoleCashier, "1234", []branch.Key{"downtown"})
		require.NoError(t, err)
		repo := &stubOperatorRepo{operators: map[string]*identity.Operator{"amara": op}}
		return NewAuthService(repo, stubTokenIssuer{}), op
	}

	t.Run("valid login issues a branch scoped token", func(t *testing.T) {
		svc, op := newService(t)

		resp, err := svc.Login(ctx, LoginRequest{Username: "amara", PIN: "1234", Branch: "downtown"})
		require.NoError(t, err)
		assert.Equal(t, "token-amara-downtown", resp.Token)
		assert.Equal(t, op.ID, resp.Operator.ID)
		assert.Equal(t, "downtown", resp.Branch)
	})

	t.Run("wrong pin and unknown user fail alike", func(t *testing.T) {
		svc, _ := newService(t)

		_, badPin := svc.Login(ctx, LoginRequest{Username: "amara", PIN: "0000", Branch: "downtown"})
		_, noUser := svc.Login(ctx, LoginRequest{Username: "ghost", PIN: "1234", Branch: "downtown"})
		assert.ErrorIs(t, badPin, shared.ErrUnauthorized)
		assert.ErrorIs(t, noUser, shared.ErrUnauthorized)
	})

	t.Run("branch outside the allow list is forbidden", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Login(ctx, LoginRequest{Username: "amara", PIN: "1234", Branch: "airport"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("missing branch is rejected", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Login(ctx, LoginRequest{Username: "amara", PIN: "1234"})
		assert.ErrorIs(t, err, shared.ErrNoActiveBranch)
	})

	t.Run("deactivated operator cannot log in", func(t *testing.T) {
		svc, op := newService(t)
		op.Deactivate()

		_, err := svc.Login(ctx, LoginRequest{Username: "amara", PIN: "1234", Branch: "downtown"})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}
