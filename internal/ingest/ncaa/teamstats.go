package ncaa

import (
	"math"
	"strconv"
	"strings"
)

// TeamTotals are the box-score counts behind a possession estimate.
type TeamTotals struct {
	Points        int
	FGA           int
	OffRebounds   int
	Turnovers     int
	FreeThrowAtts int
}

// Possessions estimates possessions as FGA - ORB + TO + 0.44*FTA.
func (t TeamTotals) Possessions() float64 {
	return float64(t.FGA-t.OffRebounds+t.Turnovers) + 0.44*float64(t.FreeThrowAtts)
}

// PPP is points per estimated possession, rounded to two decimals. It is
// zero when no possessions can be estimated.
func (t TeamTotals) PPP() float64 {
	poss := t.Possessions()
	if poss <= 0 {
		return 0
	}
	return math.Round(float64(t.Points)/poss*100) / 100
}

// ParseTeamStats reads the away and home totals from a team stats page. The
// totals table has the stat label first, then the away and home columns.
func ParseTeamStats(html string) (away, home TeamTotals, err error) {
	tables, err := ExtractTables(html)
	if err != nil {
		return away, home, err
	}
	for _, t := range tables {
		if !hasStat(t.Rows, "FGA") {
			continue
		}
		for _, row := range t.Rows {
			if len(row) < 3 {
				continue
			}
			a, h := atoi(row[1]), atoi(row[2])
			switch strings.TrimSpace(row[0]) {
			case "FGA":
				away.FGA, home.FGA = a, h
			case "ORebs":
				away.OffRebounds, home.OffRebounds = a, h
			case "TO":
				away.Turnovers, home.Turnovers = a, h
			case "FTA":
				away.FreeThrowAtts, home.FreeThrowAtts = a, h
			case "PTS":
				away.Points, home.Points = a, h
			}
		}
		return away, home, nil
	}
	return away, home, ErrUnexpectedLayout
}

func hasStat(rows [][]string, label string) bool {
	for _, row := range rows {
		if len(row) > 0 && strings.TrimSpace(row[0]) == label {
			return true
		}
	}
	return false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	return n
}
