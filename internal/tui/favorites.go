package tui

import (
	"context"
	"slices"
	"sync"
)

// FavoriteWriter persists one favorite state. Repeating a write must be
// harmless.
type FavoriteWriter interface {
	SetFavorite(ctx context.Context, quoteID string, on bool) error
}

// FavoriteSet is the client's view of which quotes are favorited. Changes
// show immediately and are undone if the server rejects them.
type FavoriteSet struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewFavoriteSet returns a set holding ids.
func NewFavoriteSet(ids ...string) *FavoriteSet {
	s := &FavoriteSet{}
	s.Reconcile(ids)

	return s
}

// Has reports whether quoteID is favorited.
func (s *FavoriteSet) Has(quoteID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.ids[quoteID]

	return ok
}

// IDs returns the favorited ids in sorted order.
func (s *FavoriteSet) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}

	slices.Sort(out)

	return out
}

// Len returns the number of favorites.
func (s *FavoriteSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.ids)
}

// Flip applies a toggle locally and returns the new state.
func (s *FavoriteSet) Flip(quoteID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[quoteID]; ok {
		delete(s.ids, quoteID)
		return false
	}

	s.ids[quoteID] = struct{}{}

	return true
}

// Rollback undoes a failed write of want. A later toggle that already moved
// the state away from want is left alone.
func (s *FavoriteSet) Rollback(quoteID string, want bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, on := s.ids[quoteID]
	if on != want {
		return
	}

	if want {
		delete(s.ids, quoteID)
	} else {
		s.ids[quoteID] = struct{}{}
	}
}

// Toggle flips quoteID, writes the new state through w and rolls back if
// the write fails.
func (s *FavoriteSet) Toggle(ctx context.Context, w FavoriteWriter, quoteID string) (bool, error) {
	on := s.Flip(quoteID)

	if err := w.SetFavorite(ctx, quoteID, on); err != nil {
		s.Rollback(quoteID, on)
		return !on, err
	}

	return on, nil
}

// Reconcile replaces local state with the server's list.
func (s *FavoriteSet) Reconcile(ids []string) {
	next := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		next[id] = struct{}{}
	}

	s.mu.Lock()
	s.ids = next
	s.mu.Unlock()
}
