package httpapi

import (
	"errors"
	"sync"

	"github.com/10-mohamedmagdy/sameh-pos/internal/cart"
	"github.com/google/uuid"
)

var ErrCartNotFound = errors.New("cart not found")

// SessionStore keeps the open carts of the checkout stations. Carts live
// only in memory: discarding one before commit has zero persisted effect.
type SessionStore struct {
	mu    sync.RWMutex
	carts map[string]*cart.Cart
}

func NewSessionStore() *SessionStore {
	return &SessionStore{carts: make(map[string]*cart.Cart)}
}

// Open creates a new cart and returns its id.
func (s *SessionStore) Open() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.carts[id] = cart.New()
	return id
}

func (s *SessionStore) Get(id string) (*cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[id]
	if !ok {
		return nil, ErrCartNotFound
	}
	return c, nil
}

// Discard drops a cart. Committed carts are discarded the same way once the
// station is done with them.
func (s *SessionStore) Discard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[id]; !ok {
		return ErrCartNotFound
	}
	delete(s.carts, id)
	return nil
}
