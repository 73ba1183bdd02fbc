package cache

import (
	"context"
	"sync"

	"github.com/salesbridge/backend/internal/domain/resolution"
)

// InMemoryStateStore keeps refresh state in process memory. Suitable
// for single-instance deployments and tests; state does not survive a
// restart, which simply forces the next refresh to run full.
type InMemoryStateStore struct {
	mu    sync.RWMutex
	state resolution.RefreshState
}

// NewInMemoryStateStore creates an empty in-memory state store
func NewInMemoryStateStore() *InMemoryStateStore {
	return &InMemoryStateStore{
		state: resolution.RefreshState{ConfigDirty: true},
	}
}

// Get returns a copy of the current state
func (s *InMemoryStateStore) Get(ctx context.Context) (*resolution.RefreshState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state := s.state
	return &state, nil
}

// Put replaces the stored state
func (s *InMemoryStateStore) Put(ctx context.Context, state *resolution.RefreshState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = *state
	return nil
}

// MarkConfigDirty flags the configuration as changed
func (s *InMemoryStateStore) MarkConfigDirty(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ConfigDirty = true
	return nil
}

var _ resolution.StateStore = (*InMemoryStateStore)(nil)
