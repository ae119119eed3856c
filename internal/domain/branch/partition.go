package branch

import (
	"sort"
	"sync"

	"github.com/branchpos/backend/internal/domain/shared"
)

// SeedFunc produces the initial state for a newly created partition.
// It must be pure: no side effects beyond building the returned value,
// so tests can assert exact initial contents.
type SeedFunc[T any] func(key Key) *T

// Partition holds one branch's isolated state bundle. All mutations on a
// branch run through Update, which serializes them; reads share the same
// lock. Partitions are never re-seeded while they exist and never shared
// across keys.
type Partition[T any] struct {
	key   Key
	mu    sync.RWMutex
	state *T
}

// Key returns the branch key this partition belongs to
func (p *Partition[T]) Key() Key {
	return p.key
}

// Update runs fn as the branch's serialized critical section
func (p *Partition[T]) Update(fn func(state *T) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fn(p.state)
}

// Read runs fn with shared access; safe to call concurrently with other
// reads but excluded against Update
func (p *Partition[T]) Read(fn func(state *T) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return fn(p.state)
}

// PartitionStore maps branch keys to lazily created partitions of T.
// Every subsystem keeps its per-branch state in one of these instead of
// re-implementing the keyed-dictionary pattern.
type PartitionStore[T any] struct {
	mu         sync.RWMutex
	seed       SeedFunc[T]
	partitions map[Key]*Partition[T]
}

// NewPartitionStore creates a store that seeds new partitions with seed
func NewPartitionStore[T any](seed SeedFunc[T]) *PartitionStore[T] {
	return &PartitionStore[T]{
		seed:       seed,
		partitions: make(map[Key]*Partition[T]),
	}
}

// Get returns the partition for key, creating and seeding it on first
// access. An unset key fails with ErrNoActiveBranch; callers must never
// fall back to an implicit default branch.
func (s *PartitionStore[T]) Get(key Key) (*Partition[T], error) {
	if key.IsZero() {
		return nil, shared.ErrNoActiveBranch
	}

	s.mu.RLock()
	p, ok := s.partitions[key]
	s.mu.RUnlock()
	if ok {
		return p, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.partitions[key]; ok {
		return p, nil
	}
	p = &Partition[T]{key: key, state: s.seed(key)}
	s.partitions[key] = p
	return p, nil
}

// Has is a non-creating existence check
func (s *PartitionStore[T]) Has(key Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.partitions[key]
	return ok
}

// Keys returns the keys of all existing partitions in sorted order
func (s *PartitionStore[T]) Keys() []Key {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]Key, 0, len(s.partitions))
	for k := range s.partitions {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
