package state

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps state in a mutex-guarded map. It is the default
// backend for local runs and the reference implementation the composite
// store is tested against.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string][]byte
}

func NewMemory() *MemoryStore {
	return &MemoryStore{states: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, key string) (json.RawMessage, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.states[key]
	if !ok {
		return nil, false, nil
	}
	// Copy so callers cannot mutate the stored bytes.
	out := make(json.RawMessage, len(data))
	copy(out, data)
	return out, true, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, state json.RawMessage) error {
	data := make([]byte, len(state))
	copy(data, state)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[key] = data
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, key)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
