// Package app assembles the crawler, store and rating service from a Config.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/fortuna/ceres/internal/backfill"
	"github.com/fortuna/ceres/internal/cache"
	"github.com/fortuna/ceres/internal/config"
	"github.com/fortuna/ceres/internal/ingest/ncaa"
	"github.com/fortuna/ceres/internal/pbp"
	"github.com/fortuna/ceres/internal/publisher"
	"github.com/fortuna/ceres/internal/service"
	"github.com/fortuna/ceres/internal/store"
	"github.com/fortuna/ceres/internal/store/csvstore"
	"github.com/fortuna/ceres/internal/store/repository"
	"github.com/fortuna/ceres/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// App holds the wired components. Database, Cache and Publisher are nil
// when not configured.
type App struct {
	Config    *config.Config
	Log       logrus.FieldLogger
	Metrics   *metrics.Manager
	Store     store.Store
	Database  *store.Database
	Cache     *cache.RedisCache
	Publisher *publisher.RedisStreamPublisher
	Scraper   *ncaa.Scraper
	Runner    *backfill.Runner
	Ratings   *service.RatingService
	Games     *service.GameService

	closers []func()
}

// New connects the configured backends. Close releases them.
func New(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*App, error) {
	a := &App{Config: cfg, Log: log, Metrics: metrics.NewManager()}

	if err := a.openStore(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if cfg.RedisURL != "" {
		rc, err := connectRedis(ctx, cfg.RedisURL, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Cache = rc
		a.closers = append(a.closers, func() { rc.Close() })
		a.Publisher = publisher.NewRedisStreamPublisher(rc.Client(), log)
	}

	variant, err := pbp.VariantFor(cfg.Sport)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Scraper = ncaa.NewScraper(a.fetcher(), cfg.Sport, log)
	recon := pbp.NewReconstructor(variant, pbp.WithLogger(log))

	runnerOpts := []backfill.Option{
		backfill.WithLogger(log),
		backfill.WithMetrics(a.Metrics),
		backfill.WithDivisions(cfg.Divisions...),
	}
	ratingOpts := []service.RatingOption{
		service.WithRatingLogger(log),
		service.WithRatingMetrics(a.Metrics),
	}
	if a.Publisher != nil {
		runnerOpts = append(runnerOpts, backfill.WithPublisher(a.Publisher))
		ratingOpts = append(ratingOpts, service.WithRatingPublisher(a.Publisher))
	}
	a.Runner = backfill.NewRunner(a.Scraper, recon, a.Store, cfg.Sport, runnerOpts...)
	a.Ratings = service.NewRatingService(a.Store, cfg.Sport, ratingOpts...)
	a.Games = service.NewGameService(a.Store)
	return a, nil
}

func (a *App) openStore(ctx context.Context) error {
	if a.Config.DatabaseURL == "" {
		st, err := csvstore.Open(a.Config.CheckpointDir)
		if err != nil {
			return err
		}
		a.Store = st
		a.Log.WithField("dir", a.Config.CheckpointDir).Info("Using CSV season store")
		return nil
	}

	db, err := store.NewDatabase(ctx, a.Config.DatabaseURL, a.Log)
	if err != nil {
		return err
	}
	if err := db.RunMigrations(ctx); err != nil {
		db.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	a.Database = db
	a.Store = repository.NewPostgres(db)
	a.closers = append(a.closers, func() { a.Store.Close() })
	a.Log.Info("Using Postgres season store")
	return nil
}

func (a *App) fetcher() ncaa.Fetcher {
	cfg := a.Config
	var f ncaa.Fetcher
	if cfg.FetchMode == config.FetchBrowser {
		bf := ncaa.NewBrowserFetcher(cfg.RequestInterval, a.Log, a.Metrics)
		a.closers = append(a.closers, bf.Close)
		f = bf
	} else {
		f = ncaa.NewClient(
			ncaa.WithRetries(cfg.FetchRetries),
			ncaa.WithBackoff(cfg.FetchBackoff),
			ncaa.WithRequestInterval(cfg.RequestInterval),
			ncaa.WithClientLogger(a.Log),
			ncaa.WithMetrics(a.Metrics),
		)
	}
	if a.Cache != nil && cfg.PageCacheTTL > 0 {
		f = ncaa.NewCachedFetcher(f, a.Cache, cfg.PageCacheTTL, a.Log)
	}
	return f
}

// Close releases every backend in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// connectRedis retries for a short while so the service can start before
// Redis is ready.
func connectRedis(ctx context.Context, url string, log logrus.FieldLogger) (*cache.RedisCache, error) {
	const attempts = 5
	delay := 2 * time.Second

	var lastErr error
	for i := 1; i <= attempts; i++ {
		rc, err := cache.NewRedisCache(ctx, url)
		if err == nil {
			return rc, nil
		}
		lastErr = err
		log.WithError(err).WithField("attempt", i).Warn("Redis connection failed")
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, fmt.Errorf("connecting to redis after %d attempts: %w", attempts, lastErr)
}
