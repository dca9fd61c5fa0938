package pbp

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindStarters(t *testing.T) {
	events := []Event{
		ev(1, 0, TeamAway, "Ford", "substitution in"),
		ev(1, 0, TeamAway, "Allen", "jumpball won"),
		ev(1, 5, TeamAway, "Team", "rebound defensive"),
		ev(1, 6, TeamAway, "Ford", "2pt jumpshot made"),
		ev(1, 7, TeamAway, "Baker", "assist"),
		ev(1, 8, TeamHome, "Hill", "steal"),
		ev(1, 9, TeamAway, "Allen", "turnover travel"),
		ev(1, 10, TeamAway, "Cole", "block"),
		ev(1, 11, TeamAway, "Dunn", "foul personal"),
		ev(1, 12, TeamAway, "Evans", "rebound offensive"),
		ev(1, 13, TeamAway, "Gray", "steal"),
	}
	assert.Equal(t, []string{"Allen", "Baker", "Cole", "Dunn", "Evans"}, findStarters(events, TeamAway))
	assert.Equal(t, []string{"Hill"}, findStarters(events, TeamHome))
}

func TestLineupOrdering(t *testing.T) {
	lt := newLineupTracker(map[string]string{
		"Adams": "C", "Brown": "G", "Clark": "F", "Davis": "G",
	}, logrus.New())
	players := []string{"Adams", "Brown", "Clark", "Davis", "Unknown"}
	lt.order(players)
	assert.Equal(t, []string{"Brown", "Davis", "Unknown", "Clark", "Adams"}, players)
}

func TestLineupTracker(t *testing.T) {
	norm, err := normalize(fixtureInput().Tables, MensVariant, logrus.New())
	require.NoError(t, err)

	events := newLineupTracker(fixturePositions, logrus.New()).apply(norm.events)
	require.Len(t, events, 23)
	for _, e := range events {
		assert.NotEqual(t, KindSubstitutionIn, e.Kind)
		assert.NotEqual(t, KindSubstitutionOut, e.Kind)
	}

	opening := events[0]
	assert.Equal(t, Lineup{"Allen", "Dunn", "Baker", "Evans", "Cole"}, opening.AwayLineup)
	assert.Equal(t, Lineup{"Hill", "King", "Irwin", "Lee", "James"}, opening.HomeLineup)

	last := events[len(events)-1]
	assert.Equal(t, Lineup{"Dunn", "Ford", "Baker", "Evans", "Cole"}, last.AwayLineup)
	assert.Equal(t, Lineup{"Hill", "Moss", "Irwin", "Lee", "James"}, last.HomeLineup)

	for _, e := range events {
		assertFullLineup(t, e.AwayLineup)
		assertFullLineup(t, e.HomeLineup)
	}
}

func TestLineupTrackerAbsentPlayerOut(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	events := []Event{
		ev(1, 0, TeamAway, "A", "jumpball won"),
		ev(1, 1, TeamAway, "B", "2pt jumpshot made"),
		ev(1, 2, TeamAway, "C", "rebound defensive"),
		ev(1, 3, TeamAway, "D", "steal"),
		ev(1, 4, TeamAway, "E", "3pt jumpshot missed"),
		ev(1, 5, TeamAway, "Z", "substitution out"),
		ev(1, 6, TeamAway, "A", "2pt layup made"),
	}
	out := newLineupTracker(nil, log).apply(events)

	require.Len(t, out, 6)
	assert.Contains(t, buf.String(), "Incomplete substitution data")
	assert.Len(t, out[5].AwayLineup, 5)
}

func TestLineupTrackerCarriesSnapshotWhileShort(t *testing.T) {
	events := []Event{
		ev(1, 0, TeamHome, "A", "jumpball won"),
		ev(1, 1, TeamHome, "B", "2pt jumpshot made"),
		ev(1, 2, TeamHome, "C", "rebound defensive"),
		ev(1, 3, TeamHome, "D", "steal"),
		ev(1, 4, TeamHome, "E", "3pt jumpshot missed"),
		ev(1, 5, TeamHome, "E", "substitution out"),
		ev(1, 5, TeamHome, "D", "substitution out"),
		ev(1, 6, TeamAway, "X", "2pt layup made"),
		ev(1, 7, TeamHome, "F", "substitution in"),
		ev(1, 7, TeamHome, "G", "substitution in"),
		ev(1, 8, TeamHome, "A", "2pt layup made"),
	}
	out := newLineupTracker(nil, logrus.New()).apply(events)
	require.Len(t, out, 7)

	assert.Equal(t, Lineup{"A", "B", "C", "D", "E"}, out[5].HomeLineup)
	assert.Equal(t, Lineup{"A", "B", "C", "F", "G"}, out[6].HomeLineup)
}

func assertFullLineup(t *testing.T, l Lineup) {
	t.Helper()
	require.Len(t, l, 5)
	seen := make(map[string]bool)
	for _, p := range l {
		assert.False(t, seen[p], "duplicate player %s", p)
		seen[p] = true
	}
}
