package ncaa

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/fortuna/ceres/pkg/metrics"
	"github.com/sirupsen/logrus"
)

const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// BrowserFetcher loads pages in headless Chrome. Use it when the stats site
// rejects plain HTTP clients.
type BrowserFetcher struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	interval time.Duration
	timeout  time.Duration
	log      logrus.FieldLogger
	metrics  *metrics.Manager

	mu          sync.Mutex
	lastRequest time.Time
}

// NewBrowserFetcher starts a Chrome allocator. Close releases it.
func NewBrowserFetcher(interval time.Duration, log logrus.FieldLogger, m *metrics.Manager) *BrowserFetcher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(browserUserAgent),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BrowserFetcher{
		allocCtx: allocCtx,
		cancel:   cancel,
		interval: interval,
		timeout:  45 * time.Second,
		log:      log,
		metrics:  m,
	}
}

func (b *BrowserFetcher) Close() {
	if b.cancel != nil {
		b.cancel()
	}
}

func (b *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.lastRequest.IsZero() {
		if wait := b.interval - time.Since(b.lastRequest); wait > 0 {
			b.log.WithField("wait", wait.String()).Debug("Rate limiting")
			if err := sleepCtx(ctx, wait); err != nil {
				return "", err
			}
		}
	}
	html, err := b.render(ctx, url)
	b.lastRequest = time.Now()
	b.metrics.FetchAttempt(err == nil)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRetriesExhausted, url, err)
	}
	return html, nil
}

func (b *BrowserFetcher) render(ctx context.Context, url string) (string, error) {
	tabCtx, cancelTab := chromedp.NewContext(b.allocCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.timeout)
	defer cancelTimeout()

	// Abort the tab if the caller gives up first.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady(`body`, chromedp.ByQuery),
		chromedp.OuterHTML(`html`, &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp: %w", err)
	}
	if html == "" {
		return "", fmt.Errorf("empty document")
	}
	return html, nil
}
