package services

import (
	"context"
	"sync"
	"time"

	"pickem-app-go/logging"
	"pickem-app-go/models"

	"github.com/itbasis/go-clock"
)

// LeaderboardCache holds the most recently computed standings.
//
// Every Invalidate advances a generation counter. Callers read Generation
// before computing standings and pass it to Set, which stores nothing if an
// invalidation happened in between.
type LeaderboardCache interface {
	Get(ctx context.Context) ([]models.LeaderboardEntry, bool, error)
	Generation(ctx context.Context) (uint64, error)
	Set(ctx context.Context, gen uint64, entries []models.LeaderboardEntry) (bool, error)
	Invalidate(ctx context.Context) error
}

// MemoryLeaderboardCache keeps standings in process memory until the TTL passes
type MemoryLeaderboardCache struct {
	mu        sync.RWMutex
	entries   []models.LeaderboardEntry
	storedAt  time.Time
	populated bool
	gen       uint64
	ttl       time.Duration
	clock     clock.Clock
	logger    *logging.Logger
}

// NewMemoryLeaderboardCache creates an in-memory cache. A ttl of 0 never expires.
func NewMemoryLeaderboardCache(clk clock.Clock, ttl time.Duration) *MemoryLeaderboardCache {
	return &MemoryLeaderboardCache{
		ttl:    ttl,
		clock:  clk,
		logger: logging.WithPrefix("MemoryLeaderboardCache"),
	}
}

// Get returns a copy of the cached standings if present and fresh
func (c *MemoryLeaderboardCache) Get(ctx context.Context) ([]models.LeaderboardEntry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.populated {
		return nil, false, nil
	}
	if c.ttl > 0 && c.clock.Now().Sub(c.storedAt) >= c.ttl {
		return nil, false, nil
	}

	// Return a copy to prevent external modifications
	out := make([]models.LeaderboardEntry, len(c.entries))
	copy(out, c.entries)
	return out, true, nil
}

// Generation returns the current invalidation count
func (c *MemoryLeaderboardCache) Generation(ctx context.Context) (uint64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen, nil
}

// Set replaces the cached standings unless the cache was invalidated after gen was read
func (c *MemoryLeaderboardCache) Set(ctx context.Context, gen uint64, entries []models.LeaderboardEntry) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		c.logger.Debugf("Discarding standings computed at generation %d, now %d", gen, c.gen)
		return false, nil
	}

	c.entries = make([]models.LeaderboardEntry, len(entries))
	copy(c.entries, entries)
	c.storedAt = c.clock.Now()
	c.populated = true

	c.logger.Debugf("Cached standings for %d members", len(entries))
	return true, nil
}

// Invalidate drops the cached standings
func (c *MemoryLeaderboardCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = nil
	c.populated = false
	c.gen++
	return nil
}
