package kv

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

type entry struct {
	value     string
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStore is a KeyValueStore held in process memory. It is used when
// redis is disabled and by the terminal client for its local state.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

// NewMemoryStore creates an empty store. clock may be nil.
func NewMemoryStore(clock func() time.Time) *MemoryStore {
	if clock == nil {
		clock = time.Now
	}

	return &MemoryStore{data: make(map[string]entry), now: clock}
}

// Get implements ports.KeyValueStore.
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if !ok || e.expired(s.now()) {
		return "", domain.NewNotFoundError("Key", key)
	}

	return e.value, nil
}

// Set implements ports.KeyValueStore.
func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.data[key] = e
	s.mu.Unlock()

	return nil
}

// Delete implements ports.KeyValueStore.
func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		delete(s.data, k)
	}

	return nil
}

// Keys implements ports.KeyValueStore. Expired entries are pruned as a side effect.
func (s *MemoryStore) Keys(_ context.Context, prefix string) ([]string, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0)
	for k, e := range s.data {
		if e.expired(now) {
			delete(s.data, k)
			continue
		}

		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}

	slices.Sort(keys)

	return keys, nil
}

// Name implements ports.HealthChecker.
func (s *MemoryStore) Name() string {
	return "kv"
}

// Check implements ports.HealthChecker; memory is always available.
func (s *MemoryStore) Check(context.Context) error {
	return nil
}
