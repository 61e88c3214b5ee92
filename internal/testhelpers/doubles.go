package testhelpers

import (
	"context"
	"fmt"
	"sync"
)

// MemoryCartStore is an in-process CartStore for tests.
type MemoryCartStore struct {
	mu    sync.Mutex
	carts map[string]map[uint]int
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string]map[uint]int)}
}

func (s *MemoryCartStore) key(sessionID string, restaurantID uint) string {
	return fmt.Sprintf("%s:%d", sessionID, restaurantID)
}

func (s *MemoryCartStore) Get(ctx context.Context, sessionID string, restaurantID uint) (map[uint]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[uint]int)
	for id, qty := range s.carts[s.key(sessionID, restaurantID)] {
		out[id] = qty
	}
	return out, nil
}

func (s *MemoryCartStore) Put(ctx context.Context, sessionID string, restaurantID uint, cart map[uint]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make(map[uint]int)
	for id, qty := range cart {
		stored[id] = qty
	}
	s.carts[s.key(sessionID, restaurantID)] = stored
	return nil
}

func (s *MemoryCartStore) Delete(ctx context.Context, sessionID string, restaurantID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, s.key(sessionID, restaurantID))
	return nil
}

// MemoryPlacementLock is an in-process PlacementLock for tests.
type MemoryPlacementLock struct {
	mu   sync.Mutex
	held map[string]bool
}

func NewMemoryPlacementLock() *MemoryPlacementLock {
	return &MemoryPlacementLock{held: make(map[string]bool)}
}

func (l *MemoryPlacementLock) key(sessionID string, restaurantID uint) string {
	return fmt.Sprintf("%s:%d", sessionID, restaurantID)
}

func (l *MemoryPlacementLock) Acquire(ctx context.Context, sessionID string, restaurantID uint) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := l.key(sessionID, restaurantID)
	if l.held[k] {
		return false, nil
	}
	l.held[k] = true
	return true, nil
}

func (l *MemoryPlacementLock) Release(ctx context.Context, sessionID string, restaurantID uint) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.held, l.key(sessionID, restaurantID))
	return nil
}
