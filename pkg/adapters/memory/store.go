package memory

import (
	"context"
	"sync"

	"github.com/aretw0/bigroot/pkg/domain"
)

// Store implements ports.ResultStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.SquareRootResult
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.SquareRootResult),
	}
}

// Save keeps a deep copy of res.
func (s *Store) Save(ctx context.Context, key string, res *domain.SquareRootResult) error {
	copied := res.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Load returns a copy so callers can't mutate the cached big.Int values.
func (s *Store) Load(ctx context.Context, key string) (*domain.SquareRootResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.data[key]
	if !ok {
		return nil, domain.ErrResultNotFound
	}
	return res.Clone(), nil
}

// Delete removes the result.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the cached keys.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

// Len returns the number of cached results.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
