package session

import (
	"sync"

	"fashionstore/internal/models"
)

// Store keeps per-session cart state in memory, keyed by the session ID
// carried in the auth token. Every mutation goes through Update, which
// holds a per-session lock for the whole read-modify-write, so the
// non-atomic add/adjust sequences stay consistent under concurrent
// requests for the same session.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	cart models.Cart
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*entry)}
}

func (s *Store) entry(id string) *entry {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.sessions[id]; ok {
		return e
	}
	e = &entry{}
	s.sessions[id] = e
	return e
}

// Update applies fn to the session's cart under the session lock. The
// cart is created empty on first use. fn's error aborts nothing; it is
// returned to the caller after the lock is released.
func (s *Store) Update(id string, fn func(cart *models.Cart) error) error {
	e := s.entry(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(&e.cart)
}

// Get returns a copy of the session's cart. Sessions never seen before
// read as an empty cart.
func (s *Store) Get(id string) models.Cart {
	e := s.entry(id)
	e.mu.Lock()
	defer e.mu.Unlock()

	cart := e.cart
	cart.Items = make([]models.CartItem, len(e.cart.Items))
	copy(cart.Items, e.cart.Items)
	return cart
}

// Delete drops all state for a session. Used on logout.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
