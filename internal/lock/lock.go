// Package lock provides named single-flight locks for scarce resources,
// chiefly the one browser automation slot.
package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker hands out named, timeout-bounded exclusive locks. The TTL must
// exceed the worst-case single-page crawl so concurrent schedules do not
// steal the slot mid-crawl; a holder that outlives its TTL is simply
// superseded by the next attempt.
type Locker interface {
	// Acquire takes the named lock for ttl. ok is false when another
	// holder has it; release is safe to call exactly once when ok.
	Acquire(ctx context.Context, name string, ttl time.Duration) (release func(), ok bool)
}

// releaseScript deletes the key only while this acquisition's token still
// owns it. A stale holder whose TTL already let a successor in must not
// free the successor's lock.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

// RedisLocker coordinates lock ownership across worker processes.
type RedisLocker struct {
	rdb *redis.Client
}

func NewRedisLocker(rdb *redis.Client) *RedisLocker {
	return &RedisLocker{rdb: rdb}
}

func (l *RedisLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (func(), bool) {
	key := "lock:" + name
	token := newToken()

	ok, err := l.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		log.Printf("[lock] acquire %q: %v", name, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return func() {
		if err := releaseScript.Run(context.Background(), l.rdb, []string{key}, token).Err(); err != nil {
			log.Printf("[lock] release %q: %v", name, err)
		}
	}, true
}

func newToken() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// Time-based fallback; uniqueness per process still holds.
		return hex.EncodeToString([]byte(time.Now().Format(time.RFC3339Nano)))
	}
	return hex.EncodeToString(buf)
}

type hold struct {
	expiry     time.Time
	generation uint64
}

// MemoryLocker is an in-process Locker for tests and single-node runs.
type MemoryLocker struct {
	mu         sync.Mutex
	held       map[string]hold
	generation uint64
	clock      func() time.Time
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		held:  make(map[string]hold),
		clock: time.Now,
	}
}

func (l *MemoryLocker) Acquire(_ context.Context, name string, ttl time.Duration) (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if h, ok := l.held[name]; ok && l.clock().Before(h.expiry) {
		return nil, false
	}
	l.generation++
	generation := l.generation
	l.held[name] = hold{expiry: l.clock().Add(ttl), generation: generation}
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		// A stale release after supersession leaves the successor's hold alone.
		if h, ok := l.held[name]; ok && h.generation == generation {
			delete(l.held, name)
		}
	}, true
}
