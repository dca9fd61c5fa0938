package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { rc.Close() })
	return rc, mr
}

func TestPageRoundTrip(t *testing.T) {
	ctx := context.Background()
	rc, mr := newTestCache(t)
	url := "https://stats.ncaa.org/contests/1/play_by_play"

	_, ok, err := rc.GetPage(ctx, url)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, rc.SetPage(ctx, url, "<table></table>", time.Hour))
	body, ok, err := rc.GetPage(ctx, url)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<table></table>", body)

	mr.FastForward(2 * time.Hour)
	_, ok, err = rc.GetPage(ctx, url)
	require.NoError(t, err)
	assert.False(t, ok, "expired")
}

func TestDeletePage(t *testing.T) {
	ctx := context.Background()
	rc, _ := newTestCache(t)
	require.NoError(t, rc.SetPage(ctx, "u", "b", 0))
	require.NoError(t, rc.DeletePage(ctx, "u"))
	_, ok, err := rc.GetPage(ctx, "u")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, rc.HealthCheck(ctx))
}

func TestPageKey(t *testing.T) {
	assert.Equal(t, pageKey("a"), pageKey("a"))
	assert.NotEqual(t, pageKey("a"), pageKey("b"))
	assert.Contains(t, pageKey("a"), pageKeyPrefix)
}
