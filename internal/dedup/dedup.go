// Package dedup suppresses reprocessing of recently seen card identifiers.
//
// The store is an optimization against redundant notification, not an
// eligibility authority: entries expire, and absence of an entry is not
// proof a card is new.
package dedup

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLs for the two identifier families.
const (
	JobTTL  = 30 * 24 * time.Hour // job and post ids
	FeedTTL = 24 * time.Hour      // ephemeral feed ids
)

// Checker is a key-existence cache with per-key expiry.
type Checker interface {
	// Seen reports whether key was marked before. Store errors degrade to
	// "not seen" so a cache outage never blocks a crawl.
	Seen(ctx context.Context, key string) bool

	// MarkSeen records key for ttl. Last write wins.
	MarkSeen(ctx context.Context, key string, ttl time.Duration)
}

// RedisChecker keeps seen keys in Redis, shared by all workers.
type RedisChecker struct {
	rdb *redis.Client
}

func NewRedisChecker(rdb *redis.Client) *RedisChecker {
	return &RedisChecker{rdb: rdb}
}

func (c *RedisChecker) Seen(ctx context.Context, key string) bool {
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		log.Printf("[dedup] exists %q: %v", key, err)
		return false
	}
	return n > 0
}

func (c *RedisChecker) MarkSeen(ctx context.Context, key string, ttl time.Duration) {
	if err := c.rdb.Set(ctx, key, "", ttl).Err(); err != nil {
		log.Printf("[dedup] mark %q: %v", key, err)
	}
}

// Purge drops every dedup key. Operator tool for forcing a full re-crawl.
func (c *RedisChecker) Purge(ctx context.Context) (int64, error) {
	keys, err := c.rdb.Keys(ctx, "*").Result()
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	return c.rdb.Del(ctx, keys...).Result()
}
