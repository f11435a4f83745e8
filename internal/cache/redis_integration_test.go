package cache

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lickees/internal/domain"
)

func integrationRedis(t *testing.T) string {
	t.Helper()
	addr := strings.TrimSpace(os.Getenv("INTEGRATION_REDIS_ADDRESS"))
	if addr == "" {
		t.Skip("set INTEGRATION_REDIS_ADDRESS to run redis integration tests")
	}
	return addr
}

func TestTillLockIntegration(t *testing.T) {
	addr := integrationRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rdb, err := Connect(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	till := "test-" + uuid.NewString()
	first := NewTillLock(rdb, till, 5*time.Second)
	second := NewTillLock(rdb, till, 5*time.Second)

	release, err := first.Acquire(ctx)
	require.NoError(t, err)

	_, err = second.Acquire(ctx)
	require.ErrorIs(t, err, ErrLocked)

	require.NoError(t, release(ctx))

	releaseAgain, err := second.Acquire(ctx)
	require.NoError(t, err)
	assert.NoError(t, releaseAgain(ctx))
}

func TestAnalyticsCacheIntegration(t *testing.T) {
	addr := integrationRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rdb, err := Connect(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	c := NewAnalyticsCache(rdb, time.Minute)
	key := "test-" + uuid.NewString()

	_, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)

	want := domain.AnalyticsResult{TotalRevenue: 75, TotalUnitsSold: 3}
	require.NoError(t, c.Set(ctx, key, want))

	got, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want.TotalRevenue, got.TotalRevenue)
	assert.Equal(t, want.TotalUnitsSold, got.TotalUnitsSold)
}
