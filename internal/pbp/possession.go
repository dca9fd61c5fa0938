package pbp

import "strings"

// trackPossession stamps the owning team and possession sequence on every
// event in a single forward pass.
func trackPossession(events []Event) {
	owner := TeamNone
	seq := 0
	newHalf := false

	for i := range events {
		ev := &events[i]
		action := strings.ToLower(ev.Action)

		switch {
		case ev.IsMarker():
			ev.Possession = Possession{Owner: owner, Seq: seq}
			if strings.Contains(action, "end") {
				seq++
				newHalf = true
			}
			continue

		case ev.Actor == teamActor:
			if strings.Contains(action, "defensive") {
				if owner == TeamNone {
					owner = ev.Team
				} else {
					owner = owner.Opponent()
				}
				seq++
			}

		default:
			if owner != ev.Team && !newHalf {
				seq++
			}
			owner = ev.Team
			newHalf = false
		}
		ev.Possession = Possession{Owner: owner, Seq: seq}
	}
}
