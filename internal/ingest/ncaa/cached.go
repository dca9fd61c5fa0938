package ncaa

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// PageCache stores fetched pages by URL.
type PageCache interface {
	GetPage(ctx context.Context, url string) (string, bool, error)
	SetPage(ctx context.Context, url, body string, ttl time.Duration) error
}

// CachedFetcher serves pages from a PageCache and fills it on miss. Cache
// failures are logged and never fail the fetch.
type CachedFetcher struct {
	next  Fetcher
	cache PageCache
	ttl   time.Duration
	log   logrus.FieldLogger
}

func NewCachedFetcher(next Fetcher, cache PageCache, ttl time.Duration, log logrus.FieldLogger) *CachedFetcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CachedFetcher{next: next, cache: cache, ttl: ttl, log: log}
}

func (f *CachedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	body, ok, err := f.cache.GetPage(ctx, url)
	if err != nil {
		f.log.WithError(err).WithField("url", url).Warn("Page cache read failed")
	} else if ok {
		return body, nil
	}

	body, err = f.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	if err := f.cache.SetPage(ctx, url, body, f.ttl); err != nil {
		f.log.WithError(err).WithField("url", url).Warn("Page cache write failed")
	}
	return body, nil
}
