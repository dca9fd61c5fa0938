package pbp

const fouledAction = "fouled"

// folds reports whether an event only credits a second player on the play
// that follows it.
func folds(ev *Event) bool {
	switch ev.Kind {
	case KindAssist, KindFoul, KindSteal, KindBlock, KindJumpballLost:
		return ev.Team != TeamNone
	}
	return false
}

// pack folds secondary plays into the play they belong to. Both passes build
// a new slice, so indices always refer to the sequence being read.
func pack(events []Event) []Event {
	return dropMislabeled(foldFouls(foldSecondary(events)))
}

// foldSecondary moves assists, fouls, steals, blocks and lost jump balls onto
// the following event as its second actor. When several fold in a row only
// the last one survives.
func foldSecondary(events []Event) []Event {
	out := make([]Event, 0, len(events))
	var pending *Event
	for i := range events {
		ev := events[i]
		if folds(&ev) && i+1 < len(events) {
			pending = &events[i]
			continue
		}
		if pending != nil {
			ev.Actor2, ev.Action2 = pending.Actor, pending.Action
			pending = nil
		}
		if ev.Kind == KindFoulOn {
			ev.Action = fouledAction
		}
		out = append(out, ev)
	}
	return out
}

// foldFouls merges a "fouled" event into the field goal attempt logged at the same
// instant right after it, carrying whoever committed the foul.
func foldFouls(events []Event) []Event {
	out := make([]Event, 0, len(events))
	for i := 0; i < len(events); i++ {
		ev := events[i]
		if ev.Kind == KindFoulOn && i+1 < len(events) {
			next := events[i+1]
			if sameInstant(&ev, &next) && next.Kind.IsFieldGoal() {
				if ev.Actor2 != "" {
					next.Actor2, next.Action2 = ev.Actor2, ev.Action2
				} else {
					next.Actor2, next.Action2 = ev.Actor, ev.Action
				}
				out = append(out, next)
				i++
				continue
			}
		}
		out = append(out, ev)
	}
	return out
}

// dropMislabeled removes plays whose actor cell repeats the action text.
func dropMislabeled(events []Event) []Event {
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		if ev.Team != TeamNone && ev.Actor != "" && ev.Actor == ev.Action {
			continue
		}
		out = append(out, ev)
	}
	return out
}
