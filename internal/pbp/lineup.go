package pbp

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const lineupSize = 5

var positionRank = map[string]int{"G": 0, "F": 1, "C": 2}

// lineupTracker follows substitutions to keep both five-player units current.
type lineupTracker struct {
	positions map[string]string
	log       logrus.FieldLogger
	unknown   map[string]bool
}

func newLineupTracker(positions map[string]string, log logrus.FieldLogger) *lineupTracker {
	return &lineupTracker{positions: positions, log: log, unknown: make(map[string]bool)}
}

// findStarters returns the first five distinct players credited with a play
// before being subbed in. A player whose first appearance is a substitution
// in did not start.
func findStarters(events []Event, team Team) []string {
	var starters []string
	benched := make(map[string]bool)
	seen := make(map[string]bool)
	for i := range events {
		ev := &events[i]
		if ev.Team != team || ev.Actor == "" || ev.Actor == teamActor || ev.Actor == ev.Action {
			continue
		}
		if ev.Kind == KindSubstitutionIn {
			benched[ev.Actor] = true
			continue
		}
		if benched[ev.Actor] || seen[ev.Actor] {
			continue
		}
		seen[ev.Actor] = true
		starters = append(starters, ev.Actor)
		if len(starters) == lineupSize {
			break
		}
	}
	return starters
}

type unit struct {
	team     Team
	onCourt  []string
	snapshot Lineup
}

// apply stamps both lineups on every event and drops the substitution rows.
func (lt *lineupTracker) apply(events []Event) []Event {
	units := [2]*unit{
		{team: TeamAway, onCourt: findStarters(events, TeamAway)},
		{team: TeamHome, onCourt: findStarters(events, TeamHome)},
	}
	for _, u := range units {
		if len(u.onCourt) == lineupSize {
			lt.order(u.onCourt)
		}
		u.snapshot = Lineup(u.onCourt).clone()
	}

	out := make([]Event, 0, len(events))
	for i := range events {
		ev := events[i]
		sub := false
		for _, u := range units {
			if ev.Team == u.team && (ev.Kind == KindSubstitutionIn || ev.Kind == KindSubstitutionOut) {
				sub = true
				lt.substitute(u, &ev)
			}
		}
		ev.AwayLineup = units[0].snapshot.clone()
		ev.HomeLineup = units[1].snapshot.clone()
		if !sub {
			out = append(out, ev)
		}
	}
	return out
}

func (lt *lineupTracker) substitute(u *unit, ev *Event) {
	idx := indexOf(u.onCourt, ev.Actor)
	switch ev.Kind {
	case KindSubstitutionOut:
		if idx < 0 {
			lt.log.WithFields(logrus.Fields{
				"player": ev.Actor,
				"team":   u.team.String(),
				"period": ev.Period,
				"clock":  ev.Clock,
			}).Warn("Incomplete substitution data, using estimate")
			return
		}
		u.onCourt = append(u.onCourt[:idx], u.onCourt[idx+1:]...)
	case KindSubstitutionIn:
		if idx >= 0 {
			lt.log.WithField("player", ev.Actor).Debug("Player subbed in while already on court")
			return
		}
		u.onCourt = append(u.onCourt, ev.Actor)
	}

	if len(u.onCourt) == lineupSize {
		lt.order(u.onCourt)
		u.snapshot = Lineup(u.onCourt).clone()
	}
}

// order puts guards first and centers last, alphabetical within a position.
func (lt *lineupTracker) order(players []string) {
	sort.SliceStable(players, func(i, j int) bool {
		pi, pj := lt.position(players[i]), lt.position(players[j])
		if pi != pj {
			return pi < pj
		}
		return players[i] < players[j]
	})
}

func (lt *lineupTracker) position(player string) int {
	code := strings.ToUpper(strings.TrimSpace(lt.positions[player]))
	if code != "" {
		if r, ok := positionRank[code[:1]]; ok {
			return r
		}
	}
	if !lt.unknown[player] {
		lt.unknown[player] = true
		lt.log.WithField("player", player).Debug("No roster position, defaulting to guard")
	}
	return positionRank["G"]
}

func indexOf(players []string, name string) int {
	for i, p := range players {
		if p == name {
			return i
		}
	}
	return -1
}
