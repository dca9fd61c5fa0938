package pbp

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// MinRows is the fewest raw rows a logged game can have. Games below it
	// only carry the period announcements.
	MinRows = 20

	scoreSeparator = "-"
	teamActor      = "Team"
)

type periodColumns struct {
	time, away, score, home int
}

// locateColumns finds the clock, score and team columns of a period block
// and returns the team names taken from the header.
func locateColumns(t Table) (periodColumns, string, string) {
	cols := periodColumns{time: 0, away: 1, score: 2, home: 3}
	var teams []int
	for i, h := range t.Header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "time":
			cols.time = i
		case "score":
			cols.score = i
		default:
			teams = append(teams, i)
		}
	}
	if len(teams) >= 2 {
		cols.away, cols.home = teams[0], teams[1]
	}
	return cols, cell(t.Header, cols.away), cell(t.Header, cols.home)
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// splitActor separates "Player, action text" at the last comma. Text
// without a comma is returned as both actor and action.
func splitActor(text string) (string, string) {
	i := strings.LastIndex(text, ",")
	if i < 0 {
		return text, text
	}
	return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1:])
}

type normalized struct {
	events   []Event
	awayTeam string
	homeTeam string
}

// normalize flattens the period blocks into one event per logged row. A row
// with an unreadable clock is dropped.
func normalize(tables []Table, v Variant, log logrus.FieldLogger) (normalized, error) {
	var out normalized
	if len(tables) <= 3 {
		return out, ErrNoPeriods
	}

	rows := 0
	sawSeparator := false
	for p, t := range tables[3:] {
		period := p + 1
		cols, away, home := locateColumns(t)
		if out.awayTeam == "" {
			out.awayTeam, out.homeTeam = away, home
		}

		for _, raw := range t.Rows {
			clock := cell(raw, cols.time)
			score := cell(raw, cols.score)
			awayText := cell(raw, cols.away)
			homeText := cell(raw, cols.home)
			if clock == "" && score == "" && awayText == "" && homeText == "" {
				continue
			}

			if rows == 0 && strings.Contains(score, scoreSeparator) {
				return normalized{}, fmt.Errorf("%w: first row already scored (%q)", ErrUnsupportedFormat, score)
			}
			rows++

			remaining, err := ParseClock(clock)
			if err != nil {
				log.WithFields(logrus.Fields{
					"period": period,
					"clock":  clock,
				}).Warn("Skipping row with malformed clock")
				continue
			}

			ev := Event{
				Row:       rows - 1,
				Period:    period,
				Clock:     clock,
				Elapsed:   v.Elapsed(period, remaining),
				scoreText: score,
			}

			if !strings.Contains(score, scoreSeparator) {
				ev.Team = TeamNone
				ev.Action = firstNonEmpty(score, awayText, homeText)
				ev.Kind = Classify(ev.Action)
				out.events = append(out.events, ev)
				continue
			}
			sawSeparator = true

			text := awayText
			ev.Team = TeamAway
			if text == "" {
				text = homeText
				ev.Team = TeamHome
			}
			if text == "" {
				continue
			}
			ev.Actor, ev.Action = splitActor(text)
			ev.Kind = Classify(ev.Action)
			out.events = append(out.events, ev)
		}
	}

	if rows < MinRows {
		return normalized{}, fmt.Errorf("%w: %d rows", ErrInsufficientData, rows)
	}
	if !sawSeparator {
		return normalized{}, fmt.Errorf("%w: score column never separated", ErrUnsupportedFormat)
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
