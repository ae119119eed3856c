package event

import (
	"context"
	"errors"
	"testing"

	"github.com/branchpos/backend/internal/domain/sales"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	fail     bool
	panic    bool
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panic {
		panic("boom")
	}
	h.received = append(h.received, event)
	if h.fail {
		return errors.New("handler failed")
	}
	return nil
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func testEvent(eventType string) shared.DomainEvent {
	e := shared.NewBaseDomainEvent(eventType, "Transaction", uuid.New(), "downtown")
	return &e
}

func TestInMemoryEventBus(t *testing.T) {
	ctx := context.Background()

	t.Run("routes events to matching handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		committed := &recordingHandler{types: []string{sales.EventTypeTransactionCommitted}}
		all := &recordingHandler{}
		bus.Subscribe(committed)
		bus.Subscribe(all)

		require.NoError(t, bus.Publish(ctx, testEvent(sales.EventTypeTransactionCommitted)))
		require.NoError(t, bus.Publish(ctx, testEvent(sales.EventTypeTransactionCompleted)))

		assert.Len(t, committed.received, 1)
		assert.Len(t, all.received, 2)
	})

	t.Run("failing handler does not block others", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{types: []string{"X"}, fail: true}
		healthy := &recordingHandler{types: []string{"X"}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, testEvent("X")))
		assert.Len(t, healthy.received, 1)
	})

	t.Run("panicking handler is contained", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicking := &recordingHandler{types: []string{"X"}, panic: true}
		healthy := &recordingHandler{types: []string{"X"}}
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, testEvent("X")))
		assert.Len(t, healthy.received, 1)
	})

	t.Run("unsubscribed handler stops receiving", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		h := &recordingHandler{types: []string{"X"}}
		bus.Subscribe(h)
		bus.Unsubscribe(h)

		require.NoError(t, bus.Publish(ctx, testEvent("X")))
		assert.Empty(t, h.received)
	})
}
