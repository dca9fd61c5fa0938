package ncaa

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fortuna/ceres/internal/pbp"
	"github.com/sirupsen/logrus"
)

// Scraper turns stats pages into scoreboard entries and reconstruction input.
type Scraper struct {
	fetcher Fetcher
	sport   string
	log     logrus.FieldLogger
	now     func() time.Time
}

// NewScraper builds a Scraper for one sport code (MBB or WBB).
func NewScraper(fetcher Fetcher, sport string, log logrus.FieldLogger) *Scraper {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scraper{fetcher: fetcher, sport: sport, log: log, now: time.Now}
}

// Sport returns the sport code the scraper targets.
func (s *Scraper) Sport() string { return s.sport }

// Day lists the games of one scoreboard day.
func (s *Scraper) Day(ctx context.Context, day time.Time, division int) ([]DayGame, error) {
	html, err := s.fetcher.Fetch(ctx, ScoreboardURL(day, s.sport, division))
	if err != nil {
		return nil, err
	}
	games, err := ParseScoreboard(html, day, division, s.now())
	if err != nil {
		return nil, fmt.Errorf("parsing scoreboard %s d%d: %w", day.Format(time.DateOnly), division, err)
	}
	return games, nil
}

// Game fetches the play by play and roster positions for one contest. A
// roster page that cannot be read leaves positions empty.
func (s *Scraper) Game(ctx context.Context, gameID string) (pbp.Input, error) {
	in := pbp.Input{GameID: gameID}

	html, err := s.fetcher.Fetch(ctx, PlayByPlayURL(gameID))
	if err != nil {
		return in, err
	}
	in.Tables, err = ExtractTables(html)
	if err != nil {
		return in, fmt.Errorf("play by play %s: %w", gameID, err)
	}

	html, err = s.fetcher.Fetch(ctx, IndividualStatsURL(gameID))
	if err != nil {
		return in, err
	}
	in.Positions, err = ParsePositions(html)
	if err != nil {
		if !errors.Is(err, ErrNoTables) && !errors.Is(err, ErrUnexpectedLayout) {
			return in, err
		}
		s.log.WithField("game_id", gameID).WithError(err).Warn("Roster positions unavailable")
		in.Positions = map[string]string{}
	}
	return in, nil
}

// BoxEstimate returns the away and home ppp estimated from team box totals.
func (s *Scraper) BoxEstimate(ctx context.Context, gameID string) (awayPPP, homePPP float64, err error) {
	html, err := s.fetcher.Fetch(ctx, TeamStatsURL(gameID))
	if err != nil {
		return 0, 0, err
	}
	away, home, err := ParseTeamStats(html)
	if err != nil {
		return 0, 0, fmt.Errorf("team stats %s: %w", gameID, err)
	}
	return away.PPP(), home.PPP(), nil
}
