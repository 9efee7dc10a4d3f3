// Package cache memoizes computed leaderboards in Redis. The cache is an
// optional collaborator: the computation core never depends on it for
// correctness, and a nil cache simply recomputes every request.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gridboard/internal/scoring"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how stale a memoized board can get while upstream
// data for an in-progress week keeps changing.
const DefaultTTL = 15 * time.Minute

// Key builds the cache key for one computation. The ruleset hash is part
// of the key so alternate rule sets never collide.
func Key(season, week int, rules scoring.Ruleset) string {
	return fmt.Sprintf("leaderboard:%d:%d:%s", season, week, rules.Hash())
}

// Leaderboards stores full (unfiltered) leaderboards keyed by
// (season, week, ruleset).
type Leaderboards struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Leaderboards {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Leaderboards{client: client, ttl: ttl}
}

// Get returns the memoized board for key, or false on a miss. Redis
// errors count as misses: a flaky cache must not fail a computation.
func (c *Leaderboards) Get(ctx context.Context, key string) ([]scoring.Entry, bool) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("[Cache] get %s: %v\n", key, err)
		return nil, false
	}

	var entries []scoring.Entry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		log.Printf("[Cache] unmarshal %s: %v\n", key, err)
		return nil, false
	}
	return entries, true
}

// Set memoizes a computed board. Failures are logged and dropped.
func (c *Leaderboards) Set(ctx context.Context, key string, entries []scoring.Entry) {
	data, err := json.Marshal(entries)
	if err != nil {
		log.Printf("[Cache] marshal %s: %v\n", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("[Cache] set %s: %v\n", key, err)
	}
}

// Invalidate drops every memoized board for (season, week) across all
// rule sets, e.g. after a fresh ingest of that week's plays.
func (c *Leaderboards) Invalidate(ctx context.Context, season, week int) error {
	pattern := fmt.Sprintf("leaderboard:%d:%d:*", season, week)

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("scanning %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("deleting keys: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
