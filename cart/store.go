package cart

import (
	"context"
	"sync"
)

// Store keeps one cart per session id. A missing session yields an empty
// cart, never an error.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, c *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore is the default process-local store. Lines are copied in and
// out so callers can mutate a cart freely before saving it back.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]Line
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]Line)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines, ok := s.carts[sessionID]
	if !ok {
		return &Cart{}, nil
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return &Cart{Lines: out}, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, c *Cart) error {
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = lines
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
