package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryAdapter implements the Cache interface with an in-process map.
// It is the default backend: entries live only for the lifetime of the
// session and are lost on restart. Expiry is checked lazily on Get.
type MemoryAdapter struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryAdapter creates an empty in-memory cache.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		entries: make(map[string]memoryEntry),
	}
}

// Get retrieves a value by key, honoring expiry.
func (m *MemoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(m.entries, key)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, nil
}

// Set stores a value with the given TTL. TTL of 0 means no expiration.
func (m *MemoryAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	entry := memoryEntry{value: stored}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

// Delete removes a value by key.
func (m *MemoryAdapter) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Ping always succeeds for the in-memory backend.
func (m *MemoryAdapter) Ping(ctx context.Context) error {
	return nil
}

// Close discards all entries.
func (m *MemoryAdapter) Close() error {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}
