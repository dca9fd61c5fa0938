package pbp

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

func parseScore(text string) (int, int, bool) {
	away, home, found := strings.Cut(text, scoreSeparator)
	if !found {
		return 0, 0, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(away))
	if err != nil {
		return 0, 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(home))
	if err != nil {
		return 0, 0, false
	}
	return a, h, true
}

// trackScore carries the running score forward. A logged score never lowers
// either side, so out-of-order rows late in a run cannot pull the final
// score below the highest one seen.
func trackScore(events []Event) {
	away, home := 0, 0
	for i := range events {
		if a, h, ok := parseScore(events[i].scoreText); ok {
			away = max(away, a)
			home = max(home, h)
		}
		events[i].AwayScore = away
		events[i].HomeScore = home
	}
}

// linescoreAwayTotal reads the away total from the linescore block: the
// last cell of the first row that ends in a number.
func linescoreAwayTotal(t Table) (int, bool) {
	for _, row := range t.Rows {
		for j := len(row) - 1; j >= 0; j-- {
			v := strings.TrimSpace(row[j])
			if v == "" {
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				break
			}
			return n, true
		}
	}
	return 0, false
}

// fixScoreGlitch swaps the two score columns when the feed has them reversed,
// judged against the linescore. It reports whether a swap happened.
func fixScoreGlitch(events []Event, tables []Table, log logrus.FieldLogger) bool {
	if len(events) == 0 || len(tables) < 2 {
		return false
	}
	total, ok := linescoreAwayTotal(tables[1])
	if !ok {
		return false
	}

	last := events[len(events)-1]
	if total == last.AwayScore {
		return false
	}
	if total != last.HomeScore {
		log.WithFields(logrus.Fields{
			"linescore_away": total,
			"final_away":     last.AwayScore,
			"final_home":     last.HomeScore,
		}).Warn("Final score disagrees with linescore, leaving columns as logged")
		return false
	}

	log.Warn("Error detected in scores column, flipping cols")
	for i := range events {
		events[i].AwayScore, events[i].HomeScore = events[i].HomeScore, events[i].AwayScore
	}
	return true
}
