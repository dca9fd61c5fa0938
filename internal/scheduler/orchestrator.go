package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fortuna/ceres/internal/backfill"
	"github.com/fortuna/ceres/internal/rating"
	"github.com/fortuna/ceres/internal/store"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Crawler runs a backfill job spec.
type Crawler interface {
	Run(ctx context.Context, spec backfill.JobSpec, reporter backfill.Reporter) (backfill.Summary, error)
}

// Rater rates one division.
type Rater interface {
	Rate(ctx context.Context, division int) (store.RatingRun, error)
}

// Config holds scheduler configuration
type Config struct {
	Schedule  string // five-field cron spec, default "0 4 * * *"
	Sport     string
	Divisions []int
	Location  *time.Location
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Schedule:  "0 4 * * *",
		Sport:     "MBB",
		Divisions: []int{1, 2, 3},
		Location:  time.UTC,
	}
}

// Status reports the nightly task's last outcome.
type Status struct {
	Schedule  string           `json:"schedule"`
	NextRun   time.Time        `json:"next_run"`
	LastRun   time.Time        `json:"last_run,omitempty"`
	LastError string           `json:"last_error,omitempty"`
	RunCount  int              `json:"run_count"`
	LastCrawl backfill.Summary `json:"last_crawl"`
}

// Orchestrator runs the nightly crawl of the previous day followed by a
// rerating of every configured division.
type Orchestrator struct {
	cron    *cron.Cron
	entry   cron.EntryID
	crawler Crawler
	rater   Rater
	config  Config
	log     logrus.FieldLogger
	now     func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	status Status
}

// NewOrchestrator creates a new scheduler orchestrator
func NewOrchestrator(crawler Crawler, rater Rater, config Config, log logrus.FieldLogger) (*Orchestrator, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	log = log.WithField("component", "scheduler")

	cronLogger := cron.VerbosePrintfLogger(log)
	c := cron.New(
		cron.WithLocation(config.Location),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	o := &Orchestrator{
		cron:    c,
		crawler: crawler,
		rater:   rater,
		config:  config,
		log:     log,
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
		status:  Status{Schedule: config.Schedule},
	}

	entry, err := c.AddFunc(config.Schedule, func() {
		if err := o.RunNightly(o.ctx); err != nil {
			o.log.WithError(err).Error("Nightly run failed")
		}
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("invalid schedule %q: %w", config.Schedule, err)
	}
	o.entry = entry
	return o, nil
}

// Start begins the cron loop.
func (o *Orchestrator) Start() {
	o.cron.Start()
	o.log.WithFields(logrus.Fields{
		"schedule":  o.config.Schedule,
		"divisions": o.config.Divisions,
		"next_run":  o.cron.Entry(o.entry).Next,
	}).Info("Scheduler started")
}

// Stop gracefully stops the scheduler, waiting for a running task until ctx
// expires.
func (o *Orchestrator) Stop(ctx context.Context) error {
	o.cancel()
	done := o.cron.Stop()
	select {
	case <-done.Done():
		o.log.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		o.log.Warn("Scheduler stop timed out")
		return ctx.Err()
	}
}

// RunNightly crawls yesterday's games and rerates each division. A failed
// crawl skips rerating; a division without games is not an error.
func (o *Orchestrator) RunNightly(ctx context.Context) error {
	started := o.now()
	yesterday := started.In(o.config.Location).AddDate(0, 0, -1)
	day := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)

	log := o.log.WithField("date", day.Format(time.DateOnly))
	log.Info("Nightly crawl starting")

	summary, err := o.crawler.Run(ctx, backfill.JobSpec{
		Type:      backfill.JobTypeDateRange,
		Sport:     o.config.Sport,
		Divisions: o.config.Divisions,
		Start:     day,
		End:       day,
	}, nil)

	if err == nil {
		for _, division := range o.config.Divisions {
			if _, rerr := o.rater.Rate(ctx, division); rerr != nil {
				if errors.Is(rerr, rating.ErrNoGames) {
					log.WithField("division", division).Info("No rated games yet")
					continue
				}
				err = fmt.Errorf("rating division %d: %w", division, rerr)
				break
			}
		}
	}

	o.mu.Lock()
	o.status.RunCount++
	o.status.LastRun = started
	o.status.LastCrawl = summary
	o.status.LastError = ""
	if err != nil {
		o.status.LastError = err.Error()
	}
	o.mu.Unlock()

	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"games":    summary.Games,
		"duration": time.Since(started).Round(time.Second),
	}).Info("Nightly run complete")
	return nil
}

// GetStatus returns current scheduler status
func (o *Orchestrator) GetStatus() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	st := o.status
	st.NextRun = o.cron.Entry(o.entry).Next
	return st
}
