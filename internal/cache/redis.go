// Package cache holds the optional Redis-backed helpers: an aggregate cache
// for dashboard results and the till lock that keeps a single writer.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"lickees/internal/domain"
)

const keyPrefix = "lickees:"

var ErrLocked = errors.New("till is locked by another session")

// Connect dials addr and pings it once.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return rdb, nil
}

// AnalyticsCache memoises dashboard results. Callers embed
// analytics.Fingerprint in the key so any insert or delete moves readers to a
// fresh entry.
type AnalyticsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAnalyticsCache(rdb *redis.Client, ttl time.Duration) *AnalyticsCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &AnalyticsCache{rdb: rdb, ttl: ttl}
}

func (c *AnalyticsCache) Get(ctx context.Context, key string) (domain.AnalyticsResult, bool, error) {
	val, err := c.rdb.Get(ctx, keyPrefix+"analytics:"+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.AnalyticsResult{}, false, nil
		}
		return domain.AnalyticsResult{}, false, err
	}
	var result domain.AnalyticsResult
	if err := json.Unmarshal(val, &result); err != nil {
		return domain.AnalyticsResult{}, false, fmt.Errorf("decode cached analytics: %w", err)
	}
	return result, true, nil
}

func (c *AnalyticsCache) Set(ctx context.Context, key string, result domain.AnalyticsResult) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode analytics: %w", err)
	}
	return c.rdb.Set(ctx, keyPrefix+"analytics:"+key, body, c.ttl).Err()
}

// TillLock guards checkout so only one session writes at a time, even when
// more than one server process points at the same store.
type TillLock struct {
	locker *redislock.Client
	key    string
	ttl    time.Duration
}

func NewTillLock(rdb *redis.Client, till string, ttl time.Duration) *TillLock {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &TillLock{
		locker: redislock.New(rdb),
		key:    keyPrefix + "till:" + till,
		ttl:    ttl,
	}
}

// Acquire takes the lock without retrying and returns its release func.
func (l *TillLock) Acquire(ctx context.Context) (func(context.Context) error, error) {
	lock, err := l.locker.Obtain(ctx, l.key, l.ttl, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("obtain till lock: %w", err)
	}
	return lock.Release, nil
}
