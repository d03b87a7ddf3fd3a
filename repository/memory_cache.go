package repository

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// MemoryCache is an in-process CacheRepository. Entries expire after ttl
// (0 keeps them) and the cache never holds more than maxEntries: a full
// cache first sweeps expired entries, then evicts the entry closest to
// expiry.
type MemoryCache struct {
	mu         sync.Mutex
	data       map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	return newMemoryCache(ttl, maxEntries, time.Now)
}

func newMemoryCache(ttl time.Duration, maxEntries int, now func() time.Time) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &MemoryCache{
		data:       make(map[string]memoryEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[key]
	if !ok {
		return "", false
	}
	if m.expired(entry, m.now()) {
		delete(m.data, key)
		return "", false
	}
	return entry.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if _, exists := m.data[key]; !exists && len(m.data) >= m.maxEntries {
		m.sweep(now)
		if len(m.data) >= m.maxEntries {
			m.evictOne()
		}
	}

	entry := memoryEntry{value: value}
	if m.ttl > 0 {
		entry.expiresAt = now.Add(m.ttl)
	}
	m.data[key] = entry
	return nil
}

// Len reports the number of stored entries, expired ones included until swept.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func (m *MemoryCache) expired(e memoryEntry, now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

func (m *MemoryCache) sweep(now time.Time) {
	for k, e := range m.data {
		if m.expired(e, now) {
			delete(m.data, k)
		}
	}
}

// evictOne drops the entry expiring soonest. Without a ttl all entries tie
// and an arbitrary one goes.
func (m *MemoryCache) evictOne() {
	var (
		victim string
		oldest time.Time
		found  bool
	)
	for k, e := range m.data {
		if !found || e.expiresAt.Before(oldest) {
			victim, oldest, found = k, e.expiresAt, true
		}
	}
	if found {
		delete(m.data, victim)
	}
}
