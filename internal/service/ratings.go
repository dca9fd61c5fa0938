package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fortuna/ceres/internal/publisher"
	"github.com/fortuna/ceres/internal/rating"
	"github.com/fortuna/ceres/internal/store"
	"github.com/fortuna/ceres/pkg/metrics"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RatingStore is the part of the season store a rating run needs.
type RatingStore interface {
	Games(ctx context.Context, filter store.GameFilter) ([]store.SeasonGame, error)
	SaveRatings(ctx context.Context, run store.RatingRun) error
	LatestRatings(ctx context.Context, division int) (store.RatingRun, error)
}

// RatingPublisher announces finished runs.
type RatingPublisher interface {
	PublishRatings(ctx context.Context, msg publisher.RatingsPublished) error
}

// RatingService rates one division from the season games table.
type RatingService struct {
	store     RatingStore
	engine    *rating.Engine
	sport     string
	publisher RatingPublisher
	metrics   *metrics.Manager
	log       logrus.FieldLogger
	now       func() time.Time
}

// RatingOption configures a RatingService.
type RatingOption func(*RatingService)

func WithRatingPublisher(p RatingPublisher) RatingOption {
	return func(s *RatingService) { s.publisher = p }
}

func WithRatingMetrics(m *metrics.Manager) RatingOption {
	return func(s *RatingService) { s.metrics = m }
}

func WithRatingLogger(log logrus.FieldLogger) RatingOption {
	return func(s *RatingService) {
		if log != nil {
			s.log = log
		}
	}
}

// NewRatingService creates a rating service
func NewRatingService(st RatingStore, sport string, opts ...RatingOption) *RatingService {
	s := &RatingService{
		store: st,
		sport: sport,
		log:   logrus.StandardLogger(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = rating.NewEngine(rating.WithLogger(s.log))
	return s
}

// Rate runs the engine over one division and persists the run.
func (s *RatingService) Rate(ctx context.Context, division int) (store.RatingRun, error) {
	all, err := s.store.Games(ctx, store.GameFilter{})
	if err != nil {
		return store.RatingRun{}, fmt.Errorf("loading season games: %w", err)
	}
	games := DivisionGames(all, division)

	started := time.Now()
	results, err := s.engine.Run(games)
	if err != nil {
		return store.RatingRun{}, fmt.Errorf("rating division %d: %w", division, err)
	}
	s.metrics.ObserveRatingRun(time.Since(started))

	run := store.RatingRun{
		ID:        uuid.NewString(),
		Sport:     s.sport,
		Division:  division,
		Games:     len(games),
		CreatedAt: s.now().UTC(),
		Results:   make([]store.RatingRow, 0, len(results)),
	}
	for i, r := range results {
		run.Results = append(run.Results, store.RatingRow{
			Rank:  i + 1,
			Team:  r.Team,
			Games: r.Games,
			AdjO:  r.AdjO,
			AdjD:  r.AdjD,
			AdjEM: r.AdjEM,
		})
	}

	if err := s.store.SaveRatings(ctx, run); err != nil {
		return store.RatingRun{}, fmt.Errorf("saving ratings: %w", err)
	}

	log := s.log.WithFields(logrus.Fields{"run_id": run.ID, "division": division})
	log.WithFields(logrus.Fields{"teams": len(run.Results), "games": run.Games}).Info("Ratings computed")

	if s.publisher != nil {
		msg := publisher.RatingsPublished{
			RunID:    run.ID,
			Sport:    run.Sport,
			Division: division,
			Teams:    len(run.Results),
			Games:    run.Games,
		}
		if len(run.Results) > 0 {
			msg.Top = run.Results[0].Team
		}
		if err := s.publisher.PublishRatings(ctx, msg); err != nil {
			log.WithError(err).Warn("Failed to publish ratings")
		}
	}
	return run, nil
}

// Latest returns the most recent stored run for a division.
func (s *RatingService) Latest(ctx context.Context, division int) (store.RatingRun, error) {
	return s.store.LatestRatings(ctx, division)
}

// DivisionGames isolates the rateable games of one division. Rows missing a
// game id, a team id or a positive ppp are dropped, as is any game id recorded
// more than once anywhere in the table, since such a game crosses divisions.
func DivisionGames(all []store.SeasonGame, division int) []rating.Game {
	seen := make(map[string]int, len(all))
	for _, g := range all {
		if g.GameID != "" {
			seen[g.GameID]++
		}
	}

	var out []rating.Game
	for _, g := range all {
		switch {
		case g.Division != division:
		case g.GameID == "" || seen[g.GameID] > 1:
		case g.AwayID == "" || g.HomeID == "":
		case g.AwayPPP == nil || g.HomePPP == nil:
		case *g.AwayPPP <= 0 || *g.HomePPP <= 0:
		default:
			out = append(out, rating.Game{
				ID:       g.GameID,
				HomeTeam: g.HomeTeam,
				AwayTeam: g.AwayTeam,
				HomePPP:  *g.HomePPP,
				AwayPPP:  *g.AwayPPP,
				Location: g.Location,
			})
		}
	}
	return out
}
