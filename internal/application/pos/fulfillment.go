package pos

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// FulfillmentScheduler arms one timer per pending transaction and fires
// a completion callback after the configured delay. Cancel disarms the
// timer before it fires; a timer that already fired is gone.
type FulfillmentScheduler struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[uuid.UUID]*time.Timer
}

// NewFulfillmentScheduler creates a scheduler with the given delay
func NewFulfillmentScheduler(delay time.Duration) *FulfillmentScheduler {
	return &FulfillmentScheduler{
		delay:  delay,
		timers: make(map[uuid.UUID]*time.Timer),
	}
}

// Schedule arms a timer for the transaction; fire runs on the timer
// goroutine after the delay
func (f *FulfillmentScheduler) Schedule(id uuid.UUID, fire func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.timers[id]; exists {
		return
	}
	f.timers[id] = time.AfterFunc(f.delay, func() {
		f.mu.Lock()
		delete(f.timers, id)
		f.mu.Unlock()
		fire()
	})
}

// Cancel disarms the transaction's timer. Returns false when no timer is
// armed, including when it already fired.
func (f *FulfillmentScheduler) Cancel(id uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.timers[id]
	if !ok {
		return false
	}
	t.Stop()
	delete(f.timers, id)
	return true
}

// Stop disarms all timers; used on shutdown
func (f *FulfillmentScheduler) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, t := range f.timers {
		t.Stop()
		delete(f.timers, id)
	}
}
