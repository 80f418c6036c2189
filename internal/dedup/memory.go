package dedup

import (
	"context"
	"sync"
	"time"
)

// MemoryChecker is an in-process Checker with a controllable clock.
// Used by tests and by single-node runs without Redis.
type MemoryChecker struct {
	mu   sync.Mutex
	seen map[string]time.Time // key -> expiry
	now  func() time.Time
}

func NewMemoryChecker() *MemoryChecker {
	return &MemoryChecker{
		seen: make(map[string]time.Time),
		now:  time.Now,
	}
}

// SetClock overrides the time source. Tests use this to force expiry.
func (c *MemoryChecker) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *MemoryChecker) Seen(_ context.Context, key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	expiry, ok := c.seen[key]
	if !ok {
		return false
	}
	if c.now().After(expiry) {
		delete(c.seen, key)
		return false
	}
	return true
}

func (c *MemoryChecker) MarkSeen(_ context.Context, key string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen[key] = c.now().Add(ttl)
}
