package auth

import (
	"testing"
	"time"

	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService(t *testing.T) {
	svc := NewJWTService("test-secret-test-secret-test-secret", time.Hour, "branchpos-backend")

	t.Run("round trip preserves claims", func(t *testing.T) {
		id := uuid.New()
		token, expiresAt, err := svc.Issue(id, "amara", "cashier", "downtown")
		require.NoError(t, err)
		assert.True(t, expiresAt.After(time.Now()))

		claims, err := svc.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, id, claims.OperatorID)
		assert.Equal(t, "amara", claims.Username)
		assert.Equal(t, "cashier", claims.Role)
		assert.Equal(t, "downtown", claims.Branch)
	})

	t.Run("rejects tokens signed with another secret", func(t *testing.T) {
		other := NewJWTService("another-secret-another-secret-xx", time.Hour, "branchpos-backend")
		token, _, err := other.Issue(uuid.New(), "amara", "cashier", "downtown")
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		expired := NewJWTService("test-secret-test-secret-test-secret", -time.Minute, "branchpos-backend")
		token, _, err := expired.Issue(uuid.New(), "amara", "cashier", "downtown")
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.Validate("not-a-token")
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}
