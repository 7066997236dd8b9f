package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps entries in memory only. Nothing survives the process.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a store seeded with a copy of initial.
func NewMemoryStore(initial map[string]string) *MemoryStore {
	rows := make(map[string]string, len(initial))
	for k, v := range initial {
		rows[k] = v
	}
	return &MemoryStore{rows: rows}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if key == "" {
		return "", false, ErrEmptyKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.rows[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[key] = value
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, key)
	return nil
}
