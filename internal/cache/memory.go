package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/studyforge/studyforge/internal/domain"
)

// MemoryCache is an in-process ResponseCache. Reads lazily evict expired
// entries; an independent periodic sweep removes expired entries that are
// never re-read, bounding memory.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]Entry

	ttl    time.Duration
	logger *slog.Logger

	// now is swappable for tests.
	now func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewMemoryCache creates a MemoryCache. ttl <= 0 selects DefaultTTL;
// sweepInterval <= 0 disables the background sweep (lazy eviction still
// applies).
func NewMemoryCache(ttl, sweepInterval time.Duration, logger *slog.Logger) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &MemoryCache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		logger:  logger.With("component", "response_cache"),
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}

	if sweepInterval > 0 {
		go c.sweepLoop(sweepInterval)
	}

	return c
}

// Get returns the value for key if present and unexpired. An expired entry
// is deleted as a side effect of the read; the check-and-evict sequence is
// atomic under the cache mutex.
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.GenerationResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if entry.Expired(c.now()) {
		delete(c.entries, key)
		return nil, false
	}

	return entry.Value, true
}

// Set stores value under key with a fresh expiry, unconditionally
// overwriting any existing entry.
func (c *MemoryCache) Set(ctx context.Context, key string, value *domain.GenerationResult) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry{
		Key:       key,
		Value:     value,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}
}

// Len returns the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stop terminates the background sweep. Safe to call more than once.
func (c *MemoryCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *MemoryCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			removed := c.sweep()
			if removed > 0 {
				c.logger.Debug("swept expired cache entries", "removed", removed)
			}
		}
	}
}

// sweep removes all expired entries regardless of access pattern.
func (c *MemoryCache) sweep() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if entry.Expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Compile-time check that MemoryCache satisfies ResponseCache.
var _ ResponseCache = (*MemoryCache)(nil)
