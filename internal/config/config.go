// Package config defines the service configuration and its loader.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidConfig is returned when a loaded value fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Fetch modes.
const (
	FetchHTTP    = "http"
	FetchBrowser = "browser"
)

// Config contains process configuration.
type Config struct {
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// Sport is MBB or WBB.
	Sport     string `koanf:"sport"`
	Divisions []int  `koanf:"divisions"`

	// SeasonStart and SeasonEnd bound the crawl window, formatted 2006-01-02.
	SeasonStart string `koanf:"season_start"`
	SeasonEnd   string `koanf:"season_end"`

	// CheckpointDir holds the CSV season tables.
	CheckpointDir string `koanf:"checkpoint_dir"`
	// DatabaseURL switches persistence to Postgres when set.
	DatabaseURL string `koanf:"database_url"`
	// RedisURL enables the page cache and stream publishing when set.
	RedisURL string `koanf:"redis_url"`

	RequestInterval time.Duration `koanf:"request_interval"`
	FetchRetries    int           `koanf:"fetch_retries"`
	FetchBackoff    time.Duration `koanf:"fetch_backoff"`
	FetchMode       string        `koanf:"fetch_mode"`
	PageCacheTTL    time.Duration `koanf:"page_cache_ttl"`

	HTTPAddr string `koanf:"http_addr"`
	// Schedule is a five-field cron spec for the nightly crawl.
	Schedule string `koanf:"schedule"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "json",
		Sport:           "MBB",
		Divisions:       []int{1, 2, 3},
		CheckpointDir:   "data",
		RequestInterval: 3 * time.Second,
		FetchRetries:    5,
		FetchBackoff:    3 * time.Second,
		FetchMode:       FetchHTTP,
		PageCacheTTL:    24 * time.Hour,
		HTTPAddr:        ":8080",
		Schedule:        "0 4 * * *",
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	c.Sport = strings.ToUpper(c.Sport)
	if c.Sport != "MBB" && c.Sport != "WBB" {
		return invalid("sport", c.Sport)
	}
	if len(c.Divisions) == 0 {
		return invalid("divisions", "empty")
	}
	for _, d := range c.Divisions {
		if d < 1 || d > 3 {
			return invalid("divisions", fmt.Sprint(d))
		}
	}
	for field, v := range map[string]string{"season_start": c.SeasonStart, "season_end": c.SeasonEnd} {
		if v == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, v); err != nil {
			return invalid(field, v)
		}
	}
	if c.FetchMode != FetchHTTP && c.FetchMode != FetchBrowser {
		return invalid("fetch_mode", c.FetchMode)
	}
	if c.FetchRetries < 1 {
		return invalid("fetch_retries", fmt.Sprint(c.FetchRetries))
	}
	if c.RequestInterval < 0 || c.FetchBackoff < 0 {
		return invalid("request_interval", c.RequestInterval.String())
	}
	if c.HTTPAddr == "" {
		return invalid("http_addr", "empty")
	}
	return nil
}

// Window parses the configured season bounds. Zero times are returned for
// unset bounds.
func (c *Config) Window() (start, end time.Time) {
	start, _ = time.Parse(time.DateOnly, c.SeasonStart)
	end, _ = time.Parse(time.DateOnly, c.SeasonEnd)
	return start, end
}

func invalid(field, value string) error {
	return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, field, value)
}
