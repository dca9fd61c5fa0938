package rating

// Site is where a game was played relative to one participant.
type Site int

const (
	SiteNeutral Site = iota
	SiteHome
	SiteAway
)

func (s Site) String() string {
	switch s {
	case SiteHome:
		return "Home"
	case SiteAway:
		return "Away"
	default:
		return "Neutral"
	}
}

// Factor is the home-court multiplier applied during propagation.
func (s Site) Factor() float64 {
	switch s {
	case SiteHome:
		return 1.014
	case SiteAway:
		return 0.986
	default:
		return 1.0
	}
}

// Game is one scoped result fed to a rating run.
type Game struct {
	ID       string
	HomeTeam string
	AwayTeam string
	HomePPP  float64
	AwayPPP  float64
	// Location is the venue recorded for the game. A game counts as a home
	// game only when it names the home team.
	Location string
}

// HomeSite reports the site from the home team's point of view.
func (g Game) HomeSite() Site {
	if g.Location == g.HomeTeam {
		return SiteHome
	}
	return SiteNeutral
}

// Result is a team's converged rating.
type Result struct {
	Team  string  `json:"team"`
	Games int     `json:"games"`
	AdjO  float64 `json:"adj_o"`
	AdjD  float64 `json:"adj_d"`
	AdjEM float64 `json:"adj_em"`
}
