package store

import (
	"fmt"
	"time"
)

// Result sources recorded against a season game.
const (
	SourceTimeline = "timeline"
	SourceBox      = "box"
	SourceSkipped  = "skipped"
)

// SeasonGame is one row of the season games table: a scoreboard entry plus
// the efficiency result once the game has been processed.
type SeasonGame struct {
	Date       time.Time `json:"date"`
	Time       string    `json:"time,omitempty"`
	Event      string    `json:"event,omitempty"`
	Division   int       `json:"division"`
	Status     string    `json:"status"`
	Attendance int       `json:"attendance,omitempty"`
	Location   string    `json:"location,omitempty"`

	AwaySeed   int    `json:"away_seed,omitempty"`
	AwayTeam   string `json:"away_team"`
	AwayScore  *int   `json:"away_score,omitempty"`
	AwayWins   int    `json:"away_wins"`
	AwayLosses int    `json:"away_losses"`
	AwayID     string `json:"away_id,omitempty"`

	HomeSeed   int    `json:"home_seed,omitempty"`
	HomeTeam   string `json:"home_team"`
	HomeScore  *int   `json:"home_score,omitempty"`
	HomeWins   int    `json:"home_wins"`
	HomeLosses int    `json:"home_losses"`
	HomeID     string `json:"home_id,omitempty"`

	GameID string `json:"game_id,omitempty"`

	AwayPPP *float64 `json:"away_ppp,omitempty"`
	HomePPP *float64 `json:"home_ppp,omitempty"`
	// Source says how the ppp values were obtained.
	Source string `json:"source,omitempty"`
}

// Key identifies a scoreboard entry, including ones without a game id.
func (g SeasonGame) Key() string {
	return fmt.Sprintf("%s|%d|%s|%s", g.Date.Format(time.DateOnly), g.Division, g.AwayTeam, g.HomeTeam)
}

// Processed reports whether a result (or a skip) has been recorded.
func (g SeasonGame) Processed() bool {
	return g.Source != ""
}

// GameResult is the outcome of processing one game.
type GameResult struct {
	GameID  string
	AwayPPP *float64
	HomePPP *float64
	Source  string
}

// GameFilter narrows a season games query. Zero fields match everything.
type GameFilter struct {
	Division int
	Date     time.Time
	GameID   string
	Team     string
}

// Match applies the filter in memory.
func (f GameFilter) Match(g SeasonGame) bool {
	if f.Division != 0 && g.Division != f.Division {
		return false
	}
	if !f.Date.IsZero() && !g.Date.Equal(f.Date) {
		return false
	}
	if f.GameID != "" && g.GameID != f.GameID {
		return false
	}
	if f.Team != "" && g.AwayTeam != f.Team && g.HomeTeam != f.Team {
		return false
	}
	return true
}

// EventRow is one timeline event flattened for the season event table.
type EventRow struct {
	GameID   string `json:"game_id"`
	Seq      int    `json:"seq"`
	AwayTeam string `json:"away_team"`
	HomeTeam string `json:"home_team"`
	Division int    `json:"division"`

	Period    int     `json:"period"`
	Time      string  `json:"time"`
	Seconds   float64 `json:"seconds"`
	AwayScore int     `json:"away_score"`
	HomeScore int     `json:"home_score"`
	Event     string  `json:"event"`
	Player    string  `json:"player,omitempty"`
	Player2   string  `json:"player_2,omitempty"`
	Event2    string  `json:"event_2,omitempty"`

	Possession string `json:"possession,omitempty"`
	PossCount  int    `json:"poss_count"`

	// ShotValue is zero for events that are not shots; the shot fields
	// below are meaningless then.
	ShotValue     int    `json:"shot_value,omitempty"`
	ShotType      string `json:"shot_type,omitempty"`
	Made          bool   `json:"made,omitempty"`
	IsTransition  bool   `json:"is_transition,omitempty"`
	IsPaint       bool   `json:"is_paint,omitempty"`
	SecondChance  bool   `json:"second_chance,omitempty"`
	IsGarbageTime bool   `json:"is_garbage_time"`

	Away [5]string `json:"away"`
	Home [5]string `json:"home"`
}

// RatingRow is one team's line in a rating run.
type RatingRow struct {
	Rank  int     `json:"rank"`
	Team  string  `json:"team"`
	Games int     `json:"games"`
	AdjO  float64 `json:"adj_o"`
	AdjD  float64 `json:"adj_d"`
	AdjEM float64 `json:"adj_em"`
}

// RatingRun is a persisted set of ratings for one division.
type RatingRun struct {
	ID        string      `json:"id"`
	Sport     string      `json:"sport"`
	Division  int         `json:"division"`
	Games     int         `json:"games"`
	CreatedAt time.Time   `json:"created_at"`
	Results   []RatingRow `json:"results"`
}
