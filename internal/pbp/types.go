package pbp

// Team identifies which side of the contest produced an event.
type Team int

const (
	TeamNone Team = iota
	TeamAway
	TeamHome
)

func (t Team) String() string {
	switch t {
	case TeamAway:
		return "away"
	case TeamHome:
		return "home"
	default:
		return ""
	}
}

// Opponent returns the other side. TeamNone has no opponent.
func (t Team) Opponent() Team {
	switch t {
	case TeamAway:
		return TeamHome
	case TeamHome:
		return TeamAway
	default:
		return TeamNone
	}
}

// Table is one tabular block lifted from a page.
type Table struct {
	Header []string
	Rows   [][]string
}

// Input is everything scraped for one contest. Tables 0-2 are summary
// blocks, tables 3+ hold one period each.
type Input struct {
	GameID    string
	Tables    []Table
	Positions map[string]string
}

// Shot holds the structured attributes of a field goal or free throw attempt.
type Shot struct {
	Value        int    `json:"value"`
	Category     string `json:"category"`
	Made         bool   `json:"made"`
	Transition   bool   `json:"transition"`
	Paint        bool   `json:"paint"`
	SecondChance bool   `json:"second_chance"`
}

// Possession is the owner and running sequence number stamped on an event.
type Possession struct {
	Owner Team `json:"owner"`
	Seq   int  `json:"seq"`
}

// Lineup is the ordered set of players a team has on the floor.
type Lineup []string

func (l Lineup) clone() Lineup {
	if l == nil {
		return nil
	}
	out := make(Lineup, len(l))
	copy(out, l)
	return out
}

// Event is one typed play in a reconstructed timeline.
type Event struct {
	// Row is the index of the raw row this event was built from.
	Row     int        `json:"row"`
	Period  int        `json:"period"`
	Clock   string     `json:"clock"`
	Elapsed float64    `json:"elapsed"`
	Team    Team       `json:"team"`
	Actor   string     `json:"actor,omitempty"`
	Action  string     `json:"action"`
	Kind    ActionKind `json:"kind"`

	Actor2  string `json:"actor_2,omitempty"`
	Action2 string `json:"action_2,omitempty"`

	AwayScore  int        `json:"away_score"`
	HomeScore  int        `json:"home_score"`
	Possession Possession `json:"possession"`
	Shot       *Shot      `json:"shot,omitempty"`
	Garbage    bool       `json:"garbage"`

	AwayLineup Lineup `json:"away_lineup"`
	HomeLineup Lineup `json:"home_lineup"`

	scoreText string
}

// IsMarker reports whether the event is a game/period announcement rather
// than a play credited to either team.
func (e *Event) IsMarker() bool {
	return e.Team == TeamNone
}

func sameInstant(a, b *Event) bool {
	return a.Period == b.Period && a.Elapsed == b.Elapsed
}

func (t Team) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
