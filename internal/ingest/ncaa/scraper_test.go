package ncaa

import (
	"context"
	"testing"
	"time"

	"github.com/fortuna/ceres/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScraperDay(t *testing.T) {
	day := time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC)
	fetcher := newStubFetcher(map[string]string{ScoreboardURL(day, "MBB", 1): scoreboardPage})
	s := NewScraper(fetcher, "MBB", logger.Discard())
	s.now = func() time.Time { return day.AddDate(0, 1, 0) }

	games, err := s.Day(context.Background(), day, 1)
	require.NoError(t, err)
	require.Len(t, games, 4)
	assert.Equal(t, "6001234", games[0].GameID)
}

func TestScraperGame(t *testing.T) {
	fetcher := newStubFetcher(map[string]string{
		PlayByPlayURL("6001234"):      playByPlayPage,
		IndividualStatsURL("6001234"): individualStatsPage,
	})
	s := NewScraper(fetcher, "MBB", logger.Discard())

	in, err := s.Game(context.Background(), "6001234")
	require.NoError(t, err)
	assert.Equal(t, "6001234", in.GameID)
	assert.Len(t, in.Tables, 4)
	assert.Equal(t, "C", in.Positions["Cole"])
}

func TestScraperGameWithoutRoster(t *testing.T) {
	fetcher := newStubFetcher(map[string]string{
		PlayByPlayURL("1"):      playByPlayPage,
		IndividualStatsURL("1"): "<html><body>no tables</body></html>",
	})
	s := NewScraper(fetcher, "WBB", logger.Discard())

	in, err := s.Game(context.Background(), "1")
	require.NoError(t, err)
	assert.Empty(t, in.Positions)
	assert.NotNil(t, in.Positions)
}

func TestScraperGameNoTables(t *testing.T) {
	fetcher := newStubFetcher(map[string]string{PlayByPlayURL("1"): "<html></html>"})
	s := NewScraper(fetcher, "MBB", logger.Discard())

	_, err := s.Game(context.Background(), "1")
	assert.ErrorIs(t, err, ErrNoTables)
}

func TestScraperFetchFailure(t *testing.T) {
	s := NewScraper(newStubFetcher(nil), "MBB", logger.Discard())
	_, err := s.Game(context.Background(), "1")
	assert.ErrorIs(t, err, ErrRetriesExhausted)
}

func TestScraperBoxEstimate(t *testing.T) {
	fetcher := newStubFetcher(map[string]string{TeamStatsURL("9"): teamStatsPage})
	s := NewScraper(fetcher, "MBB", logger.Discard())

	away, home, err := s.BoxEstimate(context.Background(), "9")
	require.NoError(t, err)
	assert.Equal(t, 1.02, away)
	assert.Equal(t, 1.01, home)
}
