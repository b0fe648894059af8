package sessioncache

import (
	"context"
	"sync"
	"time"

	"vitrina/internal/sentinel"
)

// Memory is the in-process session cache used when Redis is not configured.
// Entries expire lazily on read; the cache is only written by the gate, so a
// plain RWMutex is sufficient.
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	entry     Entry
	expiresAt time.Time
}

// NewMemory creates an in-memory session cache with the given entry TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the entry for key, or sentinel.ErrNotFound when absent or expired.
func (m *Memory) Get(_ context.Context, key string) (*Entry, error) {
	m.mu.RLock()
	stored, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if m.now().After(stored.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, sentinel.ErrNotFound
	}

	entry := stored.entry
	return &entry, nil
}

// Set stores the entry for key.
func (m *Memory) Set(_ context.Context, key string, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{entry: entry, expiresAt: m.now().Add(m.ttl)}
	return nil
}

// Clear removes the entry for key. Clearing an absent key is not an error.
func (m *Memory) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
