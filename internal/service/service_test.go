package service

import (
	"context"
	"testing"
	"time"

	"github.com/fortuna/ceres/internal/publisher"
	"github.com/fortuna/ceres/internal/rating"
	"github.com/fortuna/ceres/internal/store"
	"github.com/fortuna/ceres/internal/store/csvstore"
	"github.com/fortuna/ceres/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gameDay = time.Date(2025, time.January, 11, 0, 0, 0, 0, time.UTC)

func ppp(v float64) *float64 { return &v }

func seasonGame(id string, division int, away, home string, awayPPP, homePPP float64) store.SeasonGame {
	return store.SeasonGame{
		Date:     gameDay,
		Division: division,
		Status:   "Finished",
		Location: home,
		AwayTeam: away,
		AwayID:   away + "-id",
		HomeTeam: home,
		HomeID:   home + "-id",
		GameID:   id,
		AwayPPP:  ppp(awayPPP),
		HomePPP:  ppp(homePPP),
		Source:   store.SourceTimeline,
	}
}

func TestDivisionGames(t *testing.T) {
	neutral := seasonGame("5", 1, "A", "B", 1.0, 1.0)
	neutral.Location = "Mohegan Sun Arena"
	dup1 := seasonGame("7", 1, "A", "C", 1.0, 1.0)
	dup2 := seasonGame("7", 2, "A", "C", 1.0, 1.0)
	noID := seasonGame("", 1, "A", "B", 1.0, 1.0)
	nonMember := seasonGame("8", 1, "A", "Bible College", 1.3, 0.6)
	nonMember.HomeID = ""
	unprocessed := seasonGame("9", 1, "A", "B", 0, 0)
	unprocessed.AwayPPP, unprocessed.HomePPP = nil, nil
	scoreless := seasonGame("10", 1, "A", "B", 0, 1.1)

	all := []store.SeasonGame{
		seasonGame("1", 1, "A", "B", 1.1, 0.9),
		seasonGame("2", 2, "C", "D", 1.0, 1.0),
		neutral, dup1, dup2, noID, nonMember, unprocessed, scoreless,
	}

	got := DivisionGames(all, 1)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, rating.SiteHome, got[0].HomeSite())
	assert.Equal(t, 1.1, got[0].AwayPPP)
	assert.Equal(t, "5", got[1].ID)
	assert.Equal(t, rating.SiteNeutral, got[1].HomeSite())

	got = DivisionGames(all, 2)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

type fakeRatingsPublisher struct {
	msgs []publisher.RatingsPublished
}

func (f *fakeRatingsPublisher) PublishRatings(_ context.Context, msg publisher.RatingsPublished) error {
	f.msgs = append(f.msgs, msg)
	return nil
}

func TestRatingService_Rate(t *testing.T) {
	st, err := csvstore.Open(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	games := []store.SeasonGame{
		seasonGame("1", 1, "Duke", "UNC", 1.20, 0.95),
		seasonGame("2", 1, "UNC", "NC State", 1.05, 1.00),
		seasonGame("3", 1, "NC State", "Duke", 0.90, 1.15),
		seasonGame("4", 2, "Other", "Team", 1.00, 1.00),
	}
	require.NoError(t, st.UpsertGames(ctx, games))
	for _, g := range games {
		require.NoError(t, st.RecordResult(ctx, store.GameResult{
			GameID: g.GameID, AwayPPP: g.AwayPPP, HomePPP: g.HomePPP, Source: g.Source,
		}))
	}

	pub := &fakeRatingsPublisher{}
	svc := NewRatingService(st, "MBB", WithRatingPublisher(pub), WithRatingLogger(logger.Discard()))
	svc.now = func() time.Time { return gameDay }

	run, err := svc.Rate(ctx, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 3, run.Games)
	require.Len(t, run.Results, 3)
	assert.Equal(t, "Duke", run.Results[0].Team)
	for i, row := range run.Results {
		assert.Equal(t, i+1, row.Rank)
		assert.Equal(t, 2, row.Games)
		assert.InDelta(t, row.AdjO-row.AdjD, row.AdjEM, 1e-4)
	}

	latest, err := svc.Latest(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, run.ID, latest.ID)
	assert.Len(t, latest.Results, 3)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "Duke", pub.msgs[0].Top)
	assert.Equal(t, 3, pub.msgs[0].Teams)

	_, err = svc.Rate(ctx, 3)
	assert.ErrorIs(t, err, rating.ErrNoGames)
}

func TestGameService(t *testing.T) {
	st, err := csvstore.Open(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, st.UpsertGames(ctx, []store.SeasonGame{
		seasonGame("1", 1, "Duke", "UNC", 1.2, 0.95),
		seasonGame("2", 1, "Army", "Navy", 1.0, 1.0),
	}))
	require.NoError(t, st.ReplaceEvents(ctx, "1", []store.EventRow{
		{Seq: 0, Period: 1, Time: "20:00", Event: "game start"},
		{Seq: 1, Period: 1, Time: "19:41", Event: "made Three Point Jumper", Player: "SMITH,JOHN"},
	}))

	svc := NewGameService(st)

	games, err := svc.GetTeamSchedule(ctx, "Duke", 1)
	require.NoError(t, err)
	require.Len(t, games, 1)

	tl, err := svc.GetTimeline(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "UNC", tl.Game.HomeTeam)
	assert.Len(t, tl.Events, 2)

	tl, err = svc.GetTimeline(ctx, "2")
	require.NoError(t, err)
	assert.Empty(t, tl.Events)
	assert.NotNil(t, tl.Events)

	_, err = svc.GetGame(ctx, "404")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
