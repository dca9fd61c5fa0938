package rating

import (
	"fmt"
	"math"
)

// entry is one game from one team's side.
type entry struct {
	opponent int
	slot     int // index of the mirrored entry in the opponent's record
	gameID   string
	offPPP   float64
	defPPP   float64
	adjO     float64
	adjD     float64
	site     Site
}

// record is a team's season. The adjusted sums track the entries so the
// opponent means used during propagation are O(1).
type record struct {
	name    string
	games   []entry
	byGame  map[string]int
	sumAdjO float64
	sumAdjD float64
}

func (r *record) meanAdjO() float64 { return r.sumAdjO / float64(len(r.games)) }
func (r *record) meanAdjD() float64 { return r.sumAdjD / float64(len(r.games)) }

func (r *record) setAdjO(i int, v float64) {
	r.sumAdjO += v - r.games[i].adjO
	r.games[i].adjO = v
}

func (r *record) setAdjD(i int, v float64) {
	r.sumAdjD += v - r.games[i].adjD
	r.games[i].adjD = v
}

// arena holds every team of a run, indexed in order of first appearance.
type arena struct {
	teams []*record
	index map[string]int
}

func newArena() *arena {
	return &arena{index: make(map[string]int)}
}

func (a *arena) team(name string) int {
	if i, ok := a.index[name]; ok {
		return i
	}
	a.teams = append(a.teams, &record{name: name, byGame: make(map[string]int)})
	a.index[name] = len(a.teams) - 1
	return len(a.teams) - 1
}

func validPPP(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// add links both sides of a game. Adjusted values start at the observed ppp.
func (a *arena) add(g Game) error {
	if !validPPP(g.HomePPP) || !validPPP(g.AwayPPP) {
		return fmt.Errorf("game %s: %w", g.ID, ErrInvalidPPP)
	}
	if g.HomeTeam == g.AwayTeam {
		return fmt.Errorf("game %s: %s cannot play itself", g.ID, g.HomeTeam)
	}

	h, w := a.team(g.HomeTeam), a.team(g.AwayTeam)
	home, away := a.teams[h], a.teams[w]
	for _, r := range []*record{home, away} {
		if _, dup := r.byGame[g.ID]; dup {
			return fmt.Errorf("game %s for %s: %w", g.ID, r.name, ErrDuplicateGame)
		}
	}

	site := g.HomeSite()
	awaySite := SiteNeutral
	if site == SiteHome {
		awaySite = SiteAway
	}

	hs, as := len(home.games), len(away.games)
	home.games = append(home.games, entry{
		opponent: w, slot: as, gameID: g.ID,
		offPPP: g.HomePPP, defPPP: g.AwayPPP,
		adjO: g.HomePPP, adjD: g.AwayPPP,
		site: site,
	})
	away.games = append(away.games, entry{
		opponent: h, slot: hs, gameID: g.ID,
		offPPP: g.AwayPPP, defPPP: g.HomePPP,
		adjO: g.AwayPPP, adjD: g.HomePPP,
		site: awaySite,
	})
	home.byGame[g.ID], away.byGame[g.ID] = hs, as
	home.sumAdjO += g.HomePPP
	home.sumAdjD += g.AwayPPP
	away.sumAdjO += g.AwayPPP
	away.sumAdjD += g.HomePPP
	return nil
}
