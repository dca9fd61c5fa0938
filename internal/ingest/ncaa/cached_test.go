package ncaa

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fortuna/ceres/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	pages   map[string]string
	ttl     time.Duration
	readErr error
}

func (m *memCache) GetPage(_ context.Context, url string) (string, bool, error) {
	if m.readErr != nil {
		return "", false, m.readErr
	}
	body, ok := m.pages[url]
	return body, ok, nil
}

func (m *memCache) SetPage(_ context.Context, url, body string, ttl time.Duration) error {
	m.pages[url] = body
	m.ttl = ttl
	return nil
}

// stubFetcher serves fixed pages and counts requests.
type stubFetcher struct {
	pages map[string]string
	errs  map[string]error
	calls map[string]int
}

func newStubFetcher(pages map[string]string) *stubFetcher {
	return &stubFetcher{pages: pages, errs: map[string]error{}, calls: map[string]int{}}
}

func (s *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	s.calls[url]++
	if err, ok := s.errs[url]; ok {
		return "", err
	}
	body, ok := s.pages[url]
	if !ok {
		return "", ErrRetriesExhausted
	}
	return body, nil
}

func TestCachedFetcher(t *testing.T) {
	next := newStubFetcher(map[string]string{"u": "page"})
	cache := &memCache{pages: map[string]string{}}
	f := NewCachedFetcher(next, cache, time.Hour, logger.Discard())

	for range 3 {
		body, err := f.Fetch(context.Background(), "u")
		require.NoError(t, err)
		assert.Equal(t, "page", body)
	}
	assert.Equal(t, 1, next.calls["u"])
	assert.Equal(t, time.Hour, cache.ttl)
}

func TestCachedFetcherReadFailureFallsThrough(t *testing.T) {
	next := newStubFetcher(map[string]string{"u": "page"})
	cache := &memCache{pages: map[string]string{}, readErr: errors.New("connection refused")}
	f := NewCachedFetcher(next, cache, time.Hour, logger.Discard())

	body, err := f.Fetch(context.Background(), "u")
	require.NoError(t, err)
	assert.Equal(t, "page", body)
}

func TestCachedFetcherPropagatesFetchError(t *testing.T) {
	f := NewCachedFetcher(newStubFetcher(nil), &memCache{pages: map[string]string{}}, time.Hour, logger.Discard())
	_, err := f.Fetch(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRetriesExhausted)
}
