package persistence

import (
	"context"
	"slices"
	"sync"
)

// InMemoryStore is a simple, goroutine-safe implementation of HistoryStore
// and ActivationStore backed by maps.
type InMemoryStore struct {
	mu          sync.RWMutex
	histories   map[string][]byte
	activations map[string][]ActivationRecord
}

// NewInMemoryStore creates a new InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		histories:   make(map[string][]byte),
		activations: make(map[string][]ActivationRecord),
	}
}

// Ensure InMemoryStore implements the interfaces.
var _ HistoryStore = (*InMemoryStore)(nil)

var _ ActivationStore = (*InMemoryStore)(nil)

func (s *InMemoryStore) AppendEvents(ctx context.Context, runID string, records []byte) error {
	if err := validateRecords(runID, records); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.histories[runID] = append(s.histories[runID], records...)
	return nil
}

func (s *InMemoryStore) LoadHistory(ctx context.Context, runID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.histories[runID]
	if !ok {
		return nil, ErrRunNotFound
	}
	return slices.Clone(h), nil
}

func (s *InMemoryStore) SaveActivation(ctx context.Context, rec ActivationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activations[rec.RunID] = append(s.activations[rec.RunID], rec)
	return nil
}

func (s *InMemoryStore) ListActivations(ctx context.Context, runID string) ([]ActivationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs, ok := s.activations[runID]
	if !ok {
		return nil, ErrRunNotFound
	}
	return slices.Clone(recs), nil
}
