package backfill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fortuna/ceres/internal/ingest/ncaa"
	"github.com/fortuna/ceres/internal/pbp"
	"github.com/fortuna/ceres/internal/publisher"
	"github.com/fortuna/ceres/internal/store"
	"github.com/fortuna/ceres/pkg/metrics"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// GameSource scrapes scoreboards and games.
type GameSource interface {
	Day(ctx context.Context, day time.Time, division int) ([]ncaa.DayGame, error)
	Game(ctx context.Context, gameID string) (pbp.Input, error)
	BoxEstimate(ctx context.Context, gameID string) (awayPPP, homePPP float64, err error)
}

// Reconstructor builds a timeline from scraped tables.
type Reconstructor interface {
	Reconstruct(in pbp.Input) (pbp.Timeline, error)
}

// Store is the slice of the season store the runner writes to.
type Store interface {
	UpsertGames(ctx context.Context, games []store.SeasonGame) error
	RecordResult(ctx context.Context, result store.GameResult) error
	Games(ctx context.Context, filter store.GameFilter) ([]store.SeasonGame, error)
	ReplaceEvents(ctx context.Context, gameID string, rows []store.EventRow) error
	MarkDateComplete(ctx context.Context, day time.Time, division int) error
	DateComplete(ctx context.Context, day time.Time, division int) (bool, error)
}

// Publisher announces processed games.
type Publisher interface {
	PublishGameProcessed(ctx context.Context, msg publisher.GameProcessed) error
}

// Runner crawls scoreboards and games into the season store.
type Runner struct {
	source    GameSource
	recon     Reconstructor
	store     Store
	sport     string
	divisions []int
	publisher Publisher
	metrics   *metrics.Manager
	log       logrus.FieldLogger
}

// Option configures a Runner.
type Option func(*Runner)

func WithPublisher(p Publisher) Option {
	return func(r *Runner) { r.publisher = p }
}

func WithMetrics(m *metrics.Manager) Option {
	return func(r *Runner) { r.metrics = m }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// WithDivisions sets the divisions crawled when a spec names none.
func WithDivisions(divisions ...int) Option {
	return func(r *Runner) { r.divisions = divisions }
}

// NewRunner constructs a runner for one sport code.
func NewRunner(source GameSource, recon Reconstructor, st Store, sport string, opts ...Option) *Runner {
	r := &Runner{
		source:    source,
		recon:     recon,
		store:     st,
		sport:     sport,
		divisions: []int{1, 2, 3},
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the job spec, reporting progress via the Reporter if provided.
// Only a fetch that exhausts its retries, a store failure or cancellation
// stops the run early; other per-game problems are logged and skipped.
func (r *Runner) Run(ctx context.Context, spec JobSpec, reporter Reporter) (Summary, error) {
	if reporter == nil {
		reporter = nopReporter{}
	}
	if spec.ID == "" {
		spec.ID = uuid.NewString()
	}
	if len(spec.Divisions) == 0 {
		spec.Divisions = r.divisions
	}
	log := r.log.WithField("run_id", spec.ID)
	reporter.OnJobStart(spec)

	var summary Summary
	if spec.DryRun {
		reporter.OnProgress("Dry-run mode: no data will be written", 0, 0)
		reporter.OnJobComplete(summary)
		return summary, nil
	}

	var err error
	switch spec.Type {
	case JobTypeGame:
		err = r.runGames(ctx, spec, reporter, &summary, log)
	case JobTypeSeason, JobTypeDateRange:
		err = r.runDates(ctx, spec, reporter, &summary, log)
	default:
		err = fmt.Errorf("unsupported job type %s", spec.Type)
	}
	if err != nil {
		reporter.OnJobError(err)
		return summary, err
	}
	reporter.OnJobComplete(summary)
	return summary, nil
}

func (r *Runner) runGames(ctx context.Context, spec JobSpec, reporter Reporter, summary *Summary, log logrus.FieldLogger) error {
	if len(spec.GameIDs) == 0 {
		return fmt.Errorf("no game IDs provided for job type 'game'")
	}
	total := len(spec.GameIDs)
	for idx, gameID := range spec.GameIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		reporter.OnProgress(fmt.Sprintf("Processing game %s (%d/%d)", gameID, idx+1, total), idx, total)

		games, err := r.store.Games(ctx, store.GameFilter{GameID: gameID})
		if err != nil {
			return err
		}
		if len(games) == 0 {
			return fmt.Errorf("game %s is not in the season table: %w", gameID, store.ErrNotFound)
		}
		outcome, err := r.processGame(ctx, games[0], log)
		if err != nil {
			return err
		}
		summary.count(outcome)
		reporter.OnGameProcessed(gameID, outcome)
	}
	return nil
}

func (r *Runner) runDates(ctx context.Context, spec JobSpec, reporter Reporter, summary *Summary, log logrus.FieldLogger) error {
	dates := enumerateDates(spec.Start, spec.End)
	if len(dates) == 0 {
		reporter.OnProgress("No dates to process", 0, 0)
		return nil
	}

	total := len(dates)
	for idx, date := range dates {
		if err := ctx.Err(); err != nil {
			return err
		}
		reporter.OnDateStart(date, idx, total)
		summary.Dates++

		for _, division := range spec.Divisions {
			done, err := r.store.DateComplete(ctx, date, division)
			if err != nil {
				return err
			}
			if done {
				summary.DatesSkipped++
				continue
			}
			if err := r.runDay(ctx, date, division, reporter, summary, log); err != nil {
				return err
			}
		}
		reporter.OnProgress(fmt.Sprintf("Processed %s", date.Format("Jan 2, 2006")), idx+1, total)
	}
	return nil
}

func (r *Runner) runDay(ctx context.Context, date time.Time, division int, reporter Reporter, summary *Summary, log logrus.FieldLogger) error {
	log = log.WithFields(logrus.Fields{"date": date.Format(time.DateOnly), "division": division})

	day, err := r.source.Day(ctx, date, division)
	if err != nil {
		if fatal(ctx, err) {
			return err
		}
		log.WithError(err).Warn("Scoreboard unavailable, leaving date open")
		return nil
	}

	rows := make([]store.SeasonGame, 0, len(day))
	for _, g := range day {
		rows = append(rows, seasonGame(g))
	}
	if len(rows) > 0 {
		if err := r.store.UpsertGames(ctx, rows); err != nil {
			return err
		}
	}

	// Re-read so results recorded by an earlier, interrupted run are seen.
	stored, err := r.store.Games(ctx, store.GameFilter{Date: date, Division: division})
	if err != nil {
		return err
	}
	for _, g := range stored {
		if g.GameID == "" || g.Processed() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		outcome, err := r.processGame(ctx, g, log)
		if err != nil {
			return err
		}
		summary.count(outcome)
		reporter.OnGameProcessed(g.GameID, outcome)
	}
	return r.store.MarkDateComplete(ctx, date, division)
}

// processGame reconstructs one game, falls back to the box-score estimate
// when the play by play is unusable, and records the result.
func (r *Runner) processGame(ctx context.Context, g store.SeasonGame, log logrus.FieldLogger) (string, error) {
	log = log.WithField("game_id", g.GameID)
	result := store.GameResult{GameID: g.GameID, Source: store.SourceSkipped}
	outcome := OutcomeSkipped
	possessions := 0

	in, err := r.source.Game(ctx, g.GameID)
	switch {
	case err != nil && fatal(ctx, err):
		return "", err
	case err != nil:
		log.WithError(err).Warn("Game not available")
	default:
		started := time.Now()
		tl, recErr := r.recon.Reconstruct(in)
		r.metrics.ObserveReconstruct(time.Since(started))

		sum, ok := tl.Summary()
		if recErr == nil && ok {
			tl.AwayTeam, tl.HomeTeam = g.AwayTeam, g.HomeTeam
			if err := r.store.ReplaceEvents(ctx, g.GameID, store.EventRowsFromTimeline(tl, g.Division)); err != nil {
				return "", err
			}
			result.AwayPPP, result.HomePPP = &sum.AwayPPP, &sum.HomePPP
			result.Source, outcome = store.SourceTimeline, OutcomeTimeline
			possessions = sum.Possessions
			break
		}
		if recErr != nil {
			log.WithError(recErr).Info("Play by play unusable, estimating from box score")
		}

		away, home, err := r.source.BoxEstimate(ctx, g.GameID)
		switch {
		case err != nil && fatal(ctx, err):
			return "", err
		case err != nil:
			log.WithError(err).Warn("Box score not available")
		case away <= 0 || home <= 0:
			log.Warn("Box score has no possessions")
		default:
			result.AwayPPP, result.HomePPP = &away, &home
			result.Source, outcome = store.SourceBox, OutcomeFallback
		}
	}

	if err := r.store.RecordResult(ctx, result); err != nil {
		return "", err
	}
	r.metrics.GameProcessed(outcome)
	r.publish(ctx, g, result, possessions, log)
	return outcome, nil
}

func (r *Runner) publish(ctx context.Context, g store.SeasonGame, res store.GameResult, possessions int, log logrus.FieldLogger) {
	if r.publisher == nil {
		return
	}
	err := r.publisher.PublishGameProcessed(ctx, publisher.GameProcessed{
		GameID:      g.GameID,
		Sport:       r.sport,
		Division:    g.Division,
		Date:        g.Date.Format(time.DateOnly),
		AwayTeam:    g.AwayTeam,
		HomeTeam:    g.HomeTeam,
		Source:      res.Source,
		AwayPPP:     res.AwayPPP,
		HomePPP:     res.HomePPP,
		Possessions: possessions,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to publish processed game")
	}
}

// fatal reports whether err must stop the whole run.
func fatal(ctx context.Context, err error) bool {
	return errors.Is(err, ncaa.ErrRetriesExhausted) || ctx.Err() != nil
}

func seasonGame(g ncaa.DayGame) store.SeasonGame {
	return store.SeasonGame{
		Date:       g.Date,
		Time:       g.Time,
		Event:      g.Event,
		Division:   g.Division,
		Status:     string(g.Status),
		Attendance: g.Attendance,
		Location:   g.Location,
		AwaySeed:   g.Away.Seed,
		AwayTeam:   g.Away.Team,
		AwayScore:  g.Away.Score,
		AwayWins:   g.Away.Wins,
		AwayLosses: g.Away.Losses,
		AwayID:     g.Away.ID,
		HomeSeed:   g.Home.Seed,
		HomeTeam:   g.Home.Team,
		HomeScore:  g.Home.Score,
		HomeWins:   g.Home.Wins,
		HomeLosses: g.Home.Losses,
		HomeID:     g.Home.ID,
		GameID:     g.GameID,
	}
}

func enumerateDates(start, end time.Time) []time.Time {
	if start.IsZero() || end.IsZero() {
		return nil
	}
	if end.Before(start) {
		start, end = end, start
	}

	var dates []time.Time
	current := truncateDate(start)
	final := truncateDate(end)

	for !current.After(final) {
		dates = append(dates, current)
		current = current.AddDate(0, 0, 1)
	}

	return dates
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type nopReporter struct{}

func (nopReporter) OnJobStart(JobSpec) {}
func (nopReporter) OnDateStart(time.Time, int, int) {}
func (nopReporter) OnGameProcessed(string, string) {}
func (nopReporter) OnProgress(string, int, int) {}
func (nopReporter) OnJobComplete(Summary) {}
func (nopReporter) OnJobError(error) {}
