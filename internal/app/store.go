package app

import (
	"sync"

	"github.com/Makepad-fr/wishlist/internal/model"
)

// Store holds the last successfully loaded snapshot. It is only ever
// replaced as a whole.
type Store struct {
	mu    sync.RWMutex
	items []model.Item
}

func (s *Store) Replace(items []model.Item) {
	cp := make([]model.Item, len(items))
	copy(cp, items)
	s.mu.Lock()
	s.items = cp
	s.mu.Unlock()
}

// Snapshot returns a copy in API order.
func (s *Store) Snapshot() []model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]model.Item, len(s.items))
	copy(cp, s.items)
	return cp
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) Find(id int) (model.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}
