package rating

import (
	"io"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultPasses is the number of sweeps over every team and game.
	DefaultPasses = 50
	// DefaultInnerPasses is the number of updates per (team, game) pair.
	DefaultInnerPasses = 50
)

// Option configures an Engine.
type Option func(*Engine)

// WithPasses overrides the outer and inner iteration counts.
func WithPasses(outer, inner int) Option {
	return func(e *Engine) {
		if outer > 0 {
			e.passes = outer
		}
		if inner > 0 {
			e.innerPasses = inner
		}
	}
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// Engine computes opponent-adjusted offensive and defensive efficiency by
// propagating ratings over the graph of games for a fixed number of passes.
// An Engine keeps no state between runs.
type Engine struct {
	passes      int
	innerPasses int
	log         logrus.FieldLogger
}

// NewEngine returns an Engine with the default iteration budget.
func NewEngine(opts ...Option) *Engine {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	e := &Engine{passes: DefaultPasses, innerPasses: DefaultInnerPasses, log: discard}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run rates every team appearing in games. Results are sorted by adjusted
// efficiency margin, best first.
func (e *Engine) Run(games []Game) ([]Result, error) {
	if len(games) == 0 {
		return nil, ErrNoGames
	}

	a := newArena()
	for _, g := range games {
		if err := a.add(g); err != nil {
			return nil, err
		}
	}
	e.log.WithFields(logrus.Fields{
		"teams": len(a.teams),
		"games": len(games),
	}).Debug("Rating arena built")

	for pass := 0; pass < e.passes; pass++ {
		for t, team := range a.teams {
			for i := range team.games {
				e.propagate(a, t, i)
			}
		}
	}

	return results(a), nil
}

// propagate updates one game for both participants. The team's entry uses
// its own location factor and the opponent's mirrored entry the
// complementary one.
func (e *Engine) propagate(a *arena, t, i int) {
	team := a.teams[t]
	g := team.games[i]
	opp := a.teams[g.opponent]
	j := g.slot
	f := g.site.Factor()

	for k := 0; k < e.innerPasses; k++ {
		team.setAdjO(i, team.games[i].offPPP/(opp.meanAdjD()*f))
		team.setAdjD(i, team.games[i].defPPP/(opp.meanAdjO()*(2-f)))
		opp.setAdjO(j, opp.games[j].offPPP/(team.meanAdjD()*(2-f)))
		opp.setAdjD(j, opp.games[j].defPPP/(team.meanAdjO()*f))
	}
}

func results(a *arena) []Result {
	out := make([]Result, 0, len(a.teams))
	for _, team := range a.teams {
		if len(team.games) == 0 {
			continue
		}
		var sumO, sumD float64
		for _, g := range team.games {
			sumO += g.adjO
			sumD += g.adjD
		}
		n := float64(len(team.games))
		adjO := round4(sumO / n)
		adjD := round4(sumD / n)
		out = append(out, Result{
			Team:  team.name,
			Games: len(team.games),
			AdjO:  adjO,
			AdjD:  adjD,
			AdjEM: round4(adjO - adjD),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AdjEM != out[j].AdjEM {
			return out[i].AdjEM > out[j].AdjEM
		}
		return out[i].Team < out[j].Team
	})
	return out
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
