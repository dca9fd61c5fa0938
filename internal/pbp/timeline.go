package pbp

import (
	"errors"
	"io"
	"math"

	"github.com/sirupsen/logrus"
)

// Timeline is the reconstructed, possession-indexed play-by-play of a game.
type Timeline struct {
	GameID   string  `json:"game_id"`
	AwayTeam string  `json:"away_team"`
	HomeTeam string  `json:"home_team"`
	Sport    string  `json:"sport"`
	Swapped  bool    `json:"score_columns_swapped"`
	Events   []Event `json:"events"`
}

// Empty reports whether reconstruction produced nothing usable.
func (t Timeline) Empty() bool {
	return len(t.Events) == 0
}

// Final returns the last event of the timeline.
func (t Timeline) Final() (Event, bool) {
	if t.Empty() {
		return Event{}, false
	}
	return t.Events[len(t.Events)-1], true
}

// Summary is the per-game efficiency a rating run consumes.
type Summary struct {
	Possessions int     `json:"possessions"`
	AwayScore   int     `json:"away_score"`
	HomeScore   int     `json:"home_score"`
	AwayPPP     float64 `json:"away_ppp"`
	HomePPP     float64 `json:"home_ppp"`
}

// Summary computes points per possession up to and including the first
// garbage-time event. The possession counter advances once per side, so
// each team's possessions are half of it. ok is false when no possession
// was recorded.
func (t Timeline) Summary() (Summary, bool) {
	if t.Empty() {
		return Summary{}, false
	}
	cut := len(t.Events) - 1
	for i := range t.Events {
		if t.Events[i].Garbage {
			cut = i
			break
		}
	}
	last := t.Events[cut]
	poss := last.Possession.Seq / 2
	if poss <= 0 {
		return Summary{}, false
	}
	return Summary{
		Possessions: poss,
		AwayScore:   last.AwayScore,
		HomeScore:   last.HomeScore,
		AwayPPP:     Round2(float64(last.AwayScore) / float64(poss)),
		HomePPP:     Round2(float64(last.HomeScore) / float64(poss)),
	}, true
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Option configures a Reconstructor.
type Option func(*Reconstructor)

// WithLogger routes recoverable data problems to log.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Reconstructor) {
		if log != nil {
			r.log = log
		}
	}
}

// Reconstructor turns raw play-by-play tables into a Timeline. It holds no
// per-game state and is safe for concurrent use.
type Reconstructor struct {
	variant Variant
	log     logrus.FieldLogger
}

// NewReconstructor builds a Reconstructor for one sport variant.
func NewReconstructor(v Variant, opts ...Option) *Reconstructor {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	r := &Reconstructor{variant: v, log: discard}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconstruct runs the full pipeline over one game. Games logged in the
// legacy format or not logged at all return an empty Timeline together
// with ErrUnsupportedFormat or ErrInsufficientData.
func (r *Reconstructor) Reconstruct(in Input) (Timeline, error) {
	log := r.log.WithField("game_id", in.GameID)
	tl := Timeline{GameID: in.GameID, Sport: r.variant.Code}

	norm, err := normalize(in.Tables, r.variant, log)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) || errors.Is(err, ErrInsufficientData) {
			log.WithError(err).Info("Play by play unusable, box score estimate needed")
		}
		return tl, err
	}
	tl.AwayTeam, tl.HomeTeam = norm.awayTeam, norm.homeTeam

	events := newLineupTracker(in.Positions, log).apply(norm.events)
	events = sortEvents(events)
	events = pack(events)
	trackPossession(events)
	trackScore(events)
	tl.Swapped = fixScoreGlitch(events, in.Tables, log)
	classifyShots(events)
	flagGarbage(events, r.variant)

	tl.Events = events
	return tl, nil
}
