package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	id      int
	expires time.Time
}

// Memory is an in-process cache used when no Redis address is configured.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory returns an empty cache. A ttl <= 0 keeps entries until deleted.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, date string) (int, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[date]
	m.mu.RUnlock()
	if !ok {
		return 0, false, nil
	}
	if !e.expires.IsZero() && m.now().After(e.expires) {
		m.mu.Lock()
		delete(m.entries, date)
		m.mu.Unlock()
		return 0, false, nil
	}
	return e.id, true, nil
}

func (m *Memory) Set(_ context.Context, date string, id int) error {
	e := entry{id: id}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	m.entries[date] = e
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, date string) error {
	m.mu.Lock()
	delete(m.entries, date)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
