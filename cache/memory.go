package cache

import (
	"context"
	"sync"
)

// DefaultMemorySize bounds MemoryStore when no size is given.
const DefaultMemorySize = 256

// MemoryStore is a bounded in-process store. Once full, the oldest inserted
// entry is evicted.
type MemoryStore struct {
	mu      sync.Mutex
	maxSize int
	entries map[string][]byte
	order   []string
}

func NewMemoryStore(maxSize int) *MemoryStore {
	if maxSize <= 0 {
		maxSize = DefaultMemorySize
	}
	return &MemoryStore{maxSize: maxSize, entries: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		for len(s.order) >= s.maxSize {
			delete(s.entries, s.order[0])
			s.order = s.order[1:]
		}
		s.order = append(s.order, key)
	}
	s.entries[key] = value
	return nil
}

func (s *MemoryStore) Reset(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string][]byte)
	s.order = nil
	return nil
}

// Len returns the number of entries held.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
