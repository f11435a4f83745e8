package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsCacheSurfacesConnectionErrors(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	c := NewAnalyticsCache(rdb, 0)
	_, hit, err := c.Get(context.Background(), "today:2026-10-16:0")
	require.Error(t, err)
	assert.False(t, hit)
}

func TestConnectFailsFast(t *testing.T) {
	_, err := Connect(context.Background(), "127.0.0.1:1")
	assert.Error(t, err)
}
