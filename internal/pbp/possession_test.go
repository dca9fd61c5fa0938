package pbp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackPossession(t *testing.T) {
	events := []Event{
		ev(1, 0, TeamNone, "", "period start"),
		ev(1, 0, TeamAway, "Cole", "jumpball won"),
		ev(1, 20, TeamAway, "Allen", "2pt jumpshot made"),
		ev(1, 40, TeamHome, "Hill", "3pt jumpshot missed"),
		ev(1, 42, TeamAway, "Team", "rebound defensive"),
		ev(1, 50, TeamAway, "Dunn", "2pt jumpshot missed"),
		ev(1, 52, TeamAway, "Team", "timeout short"),
		ev(1, 1200, TeamNone, "", "period end"),
		ev(2, 1200, TeamNone, "", "period start"),
		ev(2, 1210, TeamHome, "Moss", "2pt dunk made"),
		ev(2, 1230, TeamAway, "Ford", "2pt jumpshot missed"),
	}
	trackPossession(events)

	want := []Possession{
		{TeamNone, 0},
		{TeamAway, 1},
		{TeamAway, 1},
		{TeamHome, 2},
		{TeamAway, 3},
		{TeamAway, 3},
		{TeamAway, 3},
		{TeamAway, 3},
		{TeamAway, 4},
		{TeamHome, 4},
		{TeamAway, 5},
	}
	for i, e := range events {
		assert.Equal(t, want[i], e.Possession, "event %d (%s)", i, e.Action)
	}
}

func TestPossessionMonotonic(t *testing.T) {
	tl, err := NewReconstructor(MensVariant).Reconstruct(fixtureInput())
	if !assert.NoError(t, err) {
		return
	}

	for i := 1; i < len(tl.Events); i++ {
		prev, cur := tl.Events[i-1], tl.Events[i]
		step := cur.Possession.Seq - prev.Possession.Seq
		assert.GreaterOrEqual(t, step, 0)
		assert.LessOrEqual(t, step, 1)

		boundary := prev.IsMarker() || cur.IsMarker()
		if boundary || prev.Possession.Owner == TeamNone {
			continue
		}
		if prev.Possession.Owner != cur.Possession.Owner {
			assert.Equal(t, 1, step, "owner change at event %d", i)
		} else {
			assert.Equal(t, 0, step, "no owner change at event %d", i)
		}
	}
}
