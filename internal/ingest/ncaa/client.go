// Package ncaa fetches and parses pages from the NCAA stats site.
package ncaa

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fortuna/ceres/pkg/metrics"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Fetcher returns the HTML body of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

const (
	DefaultRetries         = 5
	DefaultBackoff         = 3 * time.Second
	DefaultRequestInterval = 3 * time.Second
)

// headerSets rotate per attempt.
var headerSets = []map[string]string{
	{
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.6367.91 Safari/537.36",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
		"Referer":         "https://stats.ncaa.org/",
	},
	{
		"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.6312.122 Safari/537.36",
		"Accept":          "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.8",
		"Referer":         "https://stats.ncaa.org/",
	},
	{
		"User-Agent":      "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"Referer":         "https://stats.ncaa.org/",
	},
}

// Client is an HTTP Fetcher with header rotation, retries and rate limiting.
type Client struct {
	http     *http.Client
	retries  int
	backoff  time.Duration
	interval time.Duration
	log      logrus.FieldLogger
	metrics  *metrics.Manager

	limiter *rate.Limiter

	mu       sync.Mutex
	rotation int

	sleep func(ctx context.Context, d time.Duration) error
}

// ClientOption configures a Client.
type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

func WithRetries(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.retries = n
		}
	}
}

func WithBackoff(d time.Duration) ClientOption {
	return func(c *Client) { c.backoff = d }
}

// WithRequestInterval sets the minimum gap between consecutive requests.
func WithRequestInterval(d time.Duration) ClientOption {
	return func(c *Client) { c.interval = d }
}

func WithClientLogger(log logrus.FieldLogger) ClientOption {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

func WithMetrics(m *metrics.Manager) ClientOption {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a Client with the default retry budget and pacing.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http:     &http.Client{Timeout: 30 * time.Second},
		retries:  DefaultRetries,
		backoff:  DefaultBackoff,
		interval: DefaultRequestInterval,
		log:      logrus.StandardLogger(),
		sleep:    sleepCtx,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.limiter = rate.NewLimiter(rate.Every(c.interval), 1)
	return c
}

// Fetch GETs url, retrying failures up to the configured budget.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}

		body, wait, err := c.get(ctx, url)
		c.metrics.FetchAttempt(err == nil)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		lastErr = err

		if attempt == c.retries {
			break
		}
		c.metrics.FetchRetried()
		if wait == 0 {
			wait = c.jittered()
		}
		c.log.WithFields(logrus.Fields{
			"url":     url,
			"attempt": attempt,
			"wait":    wait.String(),
		}).WithError(err).Warn("Fetch failed, retrying")
		if err := c.sleep(ctx, wait); err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %s after %d attempts: %v", ErrRetriesExhausted, url, c.retries, lastErr)
}

// get performs one attempt. The returned duration is a server-requested
// wait, zero when none was given.
func (c *Client) get(ctx context.Context, url string) (string, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, fmt.Errorf("building request: %w", err)
	}
	for k, v := range c.nextHeaders() {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("requesting page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		var wait time.Duration
		if resp.StatusCode == http.StatusTooManyRequests {
			wait = retryAfter(resp.Header.Get("Retry-After"))
		}
		return "", wait, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("reading body: %w", err)
	}
	return string(body), 0, nil
}

func (c *Client) nextHeaders() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	h := headerSets[c.rotation%len(headerSets)]
	c.rotation++
	return h
}

func (c *Client) jittered() time.Duration {
	if c.backoff <= 0 {
		return 0
	}
	return c.backoff + time.Duration(rand.Int63n(int64(c.backoff/4)+1))
}

func retryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
