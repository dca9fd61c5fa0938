package pbp

import "math"

const (
	garbageWindowStart = 1800.0
	garbageGameLength  = 2400.0
	garbageEntryLead   = 15
	garbageHoldLead    = 10
)

// flagGarbage marks the late-game stretch where the result is no longer in
// doubt. A lead has to clear the entry threshold to start garbage time and
// only has to stay above the hold threshold to keep it. Games that went to
// overtime have none.
func flagGarbage(events []Event, v Variant) {
	for i := range events {
		events[i].Garbage = false
	}
	for i := range events {
		if v.IsOvertime(events[i].Period) {
			return
		}
	}

	prev := false
	for i := range events {
		ev := &events[i]
		if ev.Elapsed < garbageWindowStart {
			prev = false
			continue
		}
		lead := ev.AwayScore - ev.HomeScore
		if lead < 0 {
			lead = -lead
		}
		switch {
		case lead > garbageHoldLead && prev:
			ev.Garbage = true
		case lead > garbageEntryLead && float64(lead) > garbageThreshold(ev.Elapsed):
			ev.Garbage = true
		}
		prev = ev.Garbage
	}
}

func garbageThreshold(elapsed float64) float64 {
	return math.Floor((garbageGameLength-elapsed)/20) + 1
}
