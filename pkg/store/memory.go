package store

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrymomot/authgate/pkg/authenticator"
)

// Memory keeps authenticators in process memory.
// Suitable for tests and single-instance deployments.
type Memory struct {
	mu    sync.RWMutex
	items map[string]authenticator.Authenticator
	now   func() time.Time

	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithCleanupInterval starts a background loop evicting expired authenticators.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(m *Memory) {
		if d > 0 {
			m.ticker = time.NewTicker(d)
		}
	}
}

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		items: make(map[string]authenticator.Authenticator),
		now:   time.Now,
		done:  make(chan struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.ticker != nil {
		go m.cleanupLoop()
	}

	return m
}

// Add stores a, replacing any authenticator with the same id.
func (m *Memory) Add(_ context.Context, a authenticator.Authenticator) error {
	if a.ID == "" {
		return ErrInvalidAuthenticator
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[a.ID] = a
	return nil
}

// Remove revokes the authenticator. Removing an unknown id is a no-op.
func (m *Memory) Remove(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, id)
	return nil
}

// Find implements authenticator.Repository.
func (m *Memory) Find(_ context.Context, id string) (authenticator.Authenticator, error) {
	m.mu.RLock()
	a, ok := m.items[id]
	m.mu.RUnlock()

	if !ok {
		return authenticator.Authenticator{}, authenticator.ErrNotFound
	}
	return a, nil
}

// Exists reports whether a is still registered. It has the shape of a
// backing-store predicate.
func (m *Memory) Exists(_ context.Context, a authenticator.Authenticator) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.items[a.ID]
	return ok, nil
}

// DeleteExpired removes every authenticator past its absolute expiry.
func (m *Memory) DeleteExpired(_ context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, a := range m.items {
		if a.IsExpired(now) {
			delete(m.items, id)
			removed++
		}
	}
	return removed
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (m *Memory) Close() error {
	m.once.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.done)
	})
	return nil
}

func (m *Memory) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			m.DeleteExpired(context.Background())
		case <-m.done:
			return
		}
	}
}
