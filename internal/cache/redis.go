package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const pageKeyPrefix = "ceres:page:"

// RedisCache stores fetched stats pages so re-running a crawl does not hit
// the site again.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection
func NewRedisCache(ctx context.Context, redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return NewRedisCacheFromClient(client), nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify connection
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// GetPage returns a cached page body. ok is false on a miss.
func (rc *RedisCache) GetPage(ctx context.Context, url string) (string, bool, error) {
	body, err := rc.client.Get(ctx, pageKey(url)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return body, true, nil
}

// SetPage caches a page body for ttl. A zero ttl keeps it forever.
func (rc *RedisCache) SetPage(ctx context.Context, url, body string, ttl time.Duration) error {
	return rc.client.Set(ctx, pageKey(url), body, ttl).Err()
}

// DeletePage drops a cached page.
func (rc *RedisCache) DeletePage(ctx context.Context, url string) error {
	return rc.client.Del(ctx, pageKey(url)).Err()
}

func pageKey(url string) string {
	sum := sha1.Sum([]byte(url))
	return pageKeyPrefix + hex.EncodeToString(sum[:])
}
