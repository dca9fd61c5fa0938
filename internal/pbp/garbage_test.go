package pbp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lateEvent(period int, elapsed float64, away, home int) Event {
	return Event{Period: period, Elapsed: elapsed, Team: TeamAway, AwayScore: away, HomeScore: home}
}

func TestGarbageEntryThreshold(t *testing.T) {
	assert.Equal(t, 6.0, garbageThreshold(2300))
	assert.Equal(t, 31.0, garbageThreshold(1800))

	events := []Event{lateEvent(2, 2300, 70, 50)}
	flagGarbage(events, MensVariant)
	assert.True(t, events[0].Garbage)
}

func TestGarbageHysteresis(t *testing.T) {
	events := []Event{
		lateEvent(2, 1700, 60, 30), // before the window
		lateEvent(2, 2000, 60, 40), // 20 < 21
		lateEvent(2, 2200, 62, 40), // 22 > 11, enters
		lateEvent(2, 2250, 62, 50), // 12 held
		lateEvent(2, 2260, 62, 52), // 10 releases
		lateEvent(2, 2270, 64, 52), // 12 below entry, stays off
		lateEvent(2, 2390, 70, 54), // 16 > 1, enters again
	}
	flagGarbage(events, MensVariant)

	got := make([]bool, len(events))
	for i, e := range events {
		got[i] = e.Garbage
	}
	assert.Equal(t, []bool{false, false, true, true, false, false, true}, got)
}

func TestGarbageNeverInOvertime(t *testing.T) {
	events := []Event{
		lateEvent(2, 2300, 80, 50),
		lateEvent(3, 2500, 90, 50),
	}
	flagGarbage(events, MensVariant)
	for _, e := range events {
		assert.False(t, e.Garbage)
	}

	women := []Event{
		lateEvent(4, 2300, 80, 50),
		lateEvent(5, 2500, 90, 50),
	}
	flagGarbage(women, WomensVariant)
	for _, e := range women {
		assert.False(t, e.Garbage)
	}
}

func TestGarbageOnceTrueHeldAboveTen(t *testing.T) {
	events := []Event{lateEvent(2, 2200, 80, 50)}
	for s := 2201.0; s < 2400; s += 10 {
		events = append(events, lateEvent(2, s, 80, 69))
	}
	flagGarbage(events, MensVariant)
	for _, e := range events {
		assert.True(t, e.Garbage, "elapsed %.0f", e.Elapsed)
	}
}
