package settings

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	hub    *hub
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}, hub: newHub()}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	s.hub.publish(key)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	s.hub.publish(key)
	return nil
}

func (s *MemoryStore) Subscribe(key string) (<-chan Change, func()) {
	return s.hub.subscribe(key)
}
