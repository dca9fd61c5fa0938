package ncaa

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScoreboard(t *testing.T) {
	day := time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC)
	games, err := ParseScoreboard(scoreboardPage, day, 1, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, games, 4)

	neutral := games[0]
	assert.Equal(t, StatusFinished, neutral.Status)
	assert.Equal(t, "07:00 PM", neutral.Time)
	assert.Equal(t, 9314, neutral.Attendance)
	assert.Equal(t, "Empire Classic", neutral.Event)
	assert.Equal(t, "Madison Square Garden, New York", neutral.Location)
	assert.Equal(t, Side{Team: "Duke", ID: "575001", Seed: 3, Wins: 5, Losses: 1, Score: intPtr(72)}, neutral.Away)
	assert.Equal(t, Side{Team: "UNC", ID: "575002", Wins: 4, Losses: 2, Score: intPtr(68)}, neutral.Home)
	assert.Equal(t, "6001234", neutral.GameID)
	assert.Equal(t, 1, neutral.Division)

	home := games[1]
	assert.Equal(t, RegularSeason, home.Event)
	assert.Equal(t, "Davidson", home.Location, "location defaults to the host")
	assert.False(t, home.Away.Member())
	assert.Equal(t, "Warren Wilson", home.Away.Team)
	assert.Equal(t, "6001299", home.GameID)

	canceled := games[2]
	assert.Equal(t, StatusCanceled, canceled.Status)
	assert.Empty(t, canceled.GameID)
	assert.Nil(t, canceled.Away.Score)
	assert.Empty(t, canceled.Location)

	live := games[3]
	assert.Equal(t, StatusLive, live.Status)
	assert.Empty(t, live.GameID)
	assert.Zero(t, live.Attendance)
}

func TestParseScoreboardUpcoming(t *testing.T) {
	day := time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC)
	html := page(box("11/04/2024 07:00 PM", "",
		side("Duke (0-0)", "575001", ""),
		side("UNC (0-0)", "575002", ""),
		""))
	games, err := ParseScoreboard(html, day, 1, day.Add(10*time.Hour))
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, StatusUpcoming, games[0].Status)
	assert.Empty(t, games[0].GameID)
}

func TestParseScoreboardEmpty(t *testing.T) {
	games, err := ParseScoreboard(page("<p>No games</p>"), time.Now(), 1, time.Now())
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestEventLocation(t *testing.T) {
	tests := []struct {
		info, event, location string
	}{
		{"@ Madison Square Garden, New York (Empire Classic)", "Empire Classic", "Madison Square Garden, New York"},
		{"@ T-Mobile Arena, Las Vegas", RegularSeason, "T-Mobile Arena, Las Vegas"},
		{"(NCAA Tournament)", "NCAA Tournament", ""},
	}
	for _, tt := range tests {
		event, location := eventLocation(tt.info)
		assert.Equal(t, tt.event, event, tt.info)
		assert.Equal(t, tt.location, location, tt.info)
	}
}

func intPtr(n int) *int { return &n }
