package draft

import (
	"context"
	"sync"
)

// MemoryStore keeps encoded drafts in a map. Useful for tests and the
// preview server.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[string][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string][]byte)}
}

func (s *MemoryStore) Save(_ context.Context, key string, env *Envelope) error {
	if err := checkKey(key); err != nil {
		return err
	}
	data, err := Encode(env)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[key] = data
	return nil
}

func (s *MemoryStore) Load(_ context.Context, key string) (*Envelope, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	data, ok := s.drafts[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return Decode(data)
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, key)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
