package ncaa

import (
	"fmt"
	"strings"
	"time"
)

// BaseURL is the stats site root.
const BaseURL = "https://stats.ncaa.org"

// PlayByPlayURL is the period-by-period log for a contest.
func PlayByPlayURL(gameID string) string {
	return fmt.Sprintf("%s/contests/%s/play_by_play", BaseURL, gameID)
}

// IndividualStatsURL lists both rosters with their positions.
func IndividualStatsURL(gameID string) string {
	return fmt.Sprintf("%s/contests/%s/individual_stats", BaseURL, gameID)
}

// TeamStatsURL holds the team box totals.
func TeamStatsURL(gameID string) string {
	return fmt.Sprintf("%s/contests/%s/team_stats", BaseURL, gameID)
}

// AcademicYear maps a date to the season it belongs to. Games after July
// count toward the next calendar year.
func AcademicYear(day time.Time) int {
	if day.Month() > time.July {
		return day.Year() + 1
	}
	return day.Year()
}

// ScoreboardURL is the day scoreboard for one sport and division.
func ScoreboardURL(day time.Time, sportCode string, division int) string {
	date := strings.ReplaceAll(day.Format("01/02/2006"), "/", "%2F")
	return fmt.Sprintf(
		"%s/contests/livestream_scoreboards?utf8=%%E2%%9C%%93&sport_code=%s&academic_year=%d&division=%d&game_date=%s&commit=Submit",
		BaseURL, sportCode, AcademicYear(day), division, date,
	)
}
