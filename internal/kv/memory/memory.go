package memory

import (
	"context"
	"fmt"
	"sync"

	"ledger/internal/kv"
)

// Store keeps values in a map. A positive quota caps the total size of
// keys plus values, like a browser's local storage budget.
type Store struct {
	mu     sync.Mutex
	items  map[string]string
	quota  int
	used   int
	failOn map[string]error
}

func New() *Store {
	return &Store{items: make(map[string]string)}
}

// NewWithQuota creates a store refusing writes past quota bytes.
func NewWithQuota(quota int) *Store {
	s := New()
	s.quota = quota
	return s
}

// Seed preloads raw values, bypassing the quota.
func (s *Store) Seed(values map[string]string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.put(k, v)
	}
	return s
}

// FailWith makes every operation on key return err until cleared with a nil err.
func (s *Store) FailWith(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn == nil {
		s.failOn = make(map[string]error)
	}
	if err == nil {
		delete(s.failOn, key)
		return
	}
	s.failOn[key] = err
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failOn[key]; err != nil {
		return "", false, err
	}
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failOn[key]; err != nil {
		return err
	}
	if s.quota > 0 {
		next := s.used - s.size(key) + len(key) + len(value)
		if next > s.quota {
			return fmt.Errorf("set %q (%d of %d bytes): %w", key, next, s.quota, kv.ErrQuotaExceeded)
		}
	}
	s.put(key, value)
	return nil
}

func (s *Store) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		if err := s.failOn[k]; err != nil {
			return err
		}
	}
	for _, k := range keys {
		s.used -= s.size(k)
		delete(s.items, k)
	}
	return nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) put(key, value string) {
	s.used += len(key) + len(value) - s.size(key)
	s.items[key] = value
}

func (s *Store) size(key string) int {
	v, ok := s.items[key]
	if !ok {
		return 0
	}
	return len(key) + len(v)
}
