package storage

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/gaqzi/star-reviews/internal/platform/kv"
)

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNoKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, kv.ErrNotFound
	}

	// Hand out a copy so callers can't change what's stored behind our back
	return slices.Clone(value), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return ErrNoKey
	}

	s.mu.Lock()
	s.data[key] = slices.Clone(value)
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrNoKey
	}

	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()

	return nil
}
