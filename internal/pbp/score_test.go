package pbp

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func scored(texts ...string) []Event {
	events := make([]Event, len(texts))
	for i, s := range texts {
		events[i] = Event{Team: TeamAway, scoreText: s}
	}
	return events
}

func TestTrackScore(t *testing.T) {
	events := scored("game start", "0-0", "2-0", "2-0", "period end", "2-3", "4-3", "3-3")
	trackScore(events)

	want := [][2]int{{0, 0}, {0, 0}, {2, 0}, {2, 0}, {2, 0}, {2, 3}, {4, 3}, {4, 3}}
	for i, e := range events {
		assert.Equal(t, want[i], [2]int{e.AwayScore, e.HomeScore}, "event %d", i)
	}
}

func TestScoreMonotonic(t *testing.T) {
	tl, err := NewReconstructor(MensVariant).Reconstruct(fixtureInput())
	assert.NoError(t, err)
	for i := 1; i < len(tl.Events); i++ {
		assert.GreaterOrEqual(t, tl.Events[i].AwayScore, tl.Events[i-1].AwayScore)
		assert.GreaterOrEqual(t, tl.Events[i].HomeScore, tl.Events[i-1].HomeScore)
	}
}

func TestFixScoreGlitch(t *testing.T) {
	tests := []struct {
		name      string
		awayTotal string
		swapped   bool
		final     [2]int
	}{
		{"consistent", "61", false, [2]int{61, 58}},
		{"reversed columns", "58", true, [2]int{58, 61}},
		{"unrelated total", "70", false, [2]int{61, 58}},
		{"unreadable total", "-", false, [2]int{61, 58}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := []Event{{AwayScore: 0, HomeScore: 0}, {AwayScore: 61, HomeScore: 58}}
			tables := []Table{{}, {Rows: [][]string{{"Away", "30", "31", tt.awayTotal}}}}

			got := fixScoreGlitch(events, tables, logrus.New())
			assert.Equal(t, tt.swapped, got)
			assert.Equal(t, tt.final, [2]int{events[1].AwayScore, events[1].HomeScore})
		})
	}
}

func TestParseScore(t *testing.T) {
	a, h, ok := parseScore("12-10")
	assert.True(t, ok)
	assert.Equal(t, 12, a)
	assert.Equal(t, 10, h)

	_, _, ok = parseScore("period end")
	assert.False(t, ok)
}
