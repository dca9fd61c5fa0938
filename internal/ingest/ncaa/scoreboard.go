package ncaa

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// GameStatus is the state of a scoreboard entry.
type GameStatus string

const (
	StatusFinished GameStatus = "Finished"
	StatusUpcoming GameStatus = "Upcoming"
	StatusLive     GameStatus = "Live"
	StatusCanceled GameStatus = "Canceled"
)

// RegularSeason is the event name for boxes without event info.
const RegularSeason = "Regular Season"

// Side is one team's line in a scoreboard box.
type Side struct {
	Team string `json:"team"`
	// ID is empty for opponents outside the NCAA.
	ID     string `json:"id,omitempty"`
	Seed   int    `json:"seed,omitempty"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Score  *int   `json:"score,omitempty"`
}

// Member reports whether the team has an NCAA team page.
func (s Side) Member() bool { return s.ID != "" }

// DayGame is one box of a day scoreboard.
type DayGame struct {
	Date       time.Time  `json:"date"`
	Time       string     `json:"time,omitempty"`
	Event      string     `json:"event,omitempty"`
	Division   int        `json:"division"`
	Status     GameStatus `json:"status"`
	Attendance int        `json:"attendance,omitempty"`
	// Location is the host team's name unless the box names a venue.
	Location string `json:"location,omitempty"`
	Away     Side   `json:"away"`
	Home     Side   `json:"home"`
	// GameID is set only for finished games with a box score.
	GameID string `json:"game_id,omitempty"`
}

var (
	recordPattern = regexp.MustCompile(`\((\d+)-(\d+)\)\s*$`)
	contestLink   = regexp.MustCompile(`/contests/(\d+)/`)
)

// ParseScoreboard reads every game box of a day scoreboard. today decides
// whether an unscored game is still upcoming.
func ParseScoreboard(html string, day time.Time, division int, today time.Time) ([]DayGame, error) {
	doc, err := ParseHTML(html)
	if err != nil {
		return nil, err
	}
	var games []DayGame
	topLevel(doc.Selection).Each(func(_ int, box *goquery.Selection) {
		if g, ok := parseBox(box, day, division, today); ok {
			games = append(games, g)
		}
	})
	return games, nil
}

func parseBox(box *goquery.Selection, day time.Time, division int, today time.Time) (DayGame, bool) {
	rows := ownRows(box)
	if rows.Length() < 4 {
		return DayGame{}, false
	}
	g := DayGame{
		Date:     day,
		Division: division,
		Status:   StatusFinished,
		Event:    RegularSeason,
	}

	header := strings.Fields(rows.Eq(0).Text())
	if len(header) >= 3 {
		g.Time = strings.Join(header[1:3], " ")
	}
	hasAttendance := false
	if n := len(header); n >= 2 && header[n-2] == "Attend:" {
		if v, err := strconv.Atoi(strings.ReplaceAll(header[n-1], ",", "")); err == nil {
			g.Attendance = v
			hasAttendance = true
		}
	}

	// Neutral-site and tournament boxes carry an extra info row.
	lines := rows.Slice(1, rows.Length())
	if rows.Length() == 7 {
		g.Event, g.Location = eventLocation(cleanText(rows.Eq(1).Text()))
		lines = rows.Slice(2, rows.Length())
	}
	awayRow := lines.First()
	homeRow := lines.Eq(lines.Length() - 2)
	linkRow := lines.Last()

	g.Away = parseSide(awayRow)
	g.Home = parseSide(homeRow)
	if g.Location == "" {
		g.Location = g.Home.Team
	}
	awayScore := lastCell(awayRow)
	homeScore := lastCell(homeRow)

	switch {
	case !day.Before(truncateDay(today)) && homeScore == "":
		g.Status = StatusUpcoming
		g.Attendance = 0
		return g, true
	case box.Find(`a[target="LIVE_BOX_SCORE"]`).Length() > 0:
		g.Status = StatusLive
		g.Attendance = 0
		return g, true
	case awayScore == "Canceled" || awayScore == "Ppd" || !hasAttendance:
		g.Status = StatusCanceled
		g.Time, g.Event, g.Location = "", "", ""
		g.Attendance = 0
		return g, true
	}

	g.Away.Score = atoiPtr(awayScore)
	g.Home.Score = atoiPtr(homeScore)
	if g.Away.Score == nil {
		return g, true
	}
	if href, ok := linkRow.Find("a").Attr("href"); ok {
		if m := contestLink.FindStringSubmatch(href); m != nil {
			g.GameID = m[1]
		}
	}
	return g, true
}

func parseSide(row *goquery.Selection) Side {
	cells := row.ChildrenFiltered("td")
	info := cleanText(cells.Eq(1).Text())
	var s Side
	if strings.HasPrefix(info, "#") {
		seed, rest, _ := strings.Cut(info, " ")
		s.Seed, _ = strconv.Atoi(strings.TrimPrefix(seed, "#"))
		info = rest
	}
	if m := recordPattern.FindStringSubmatch(info); m != nil {
		s.Wins, _ = strconv.Atoi(m[1])
		s.Losses, _ = strconv.Atoi(m[2])
		info = strings.TrimSpace(info[:len(info)-len(m[0])])
	}
	s.Team = info
	if href, ok := row.Find("a").First().Attr("href"); ok {
		s.ID = href[strings.LastIndex(href, "/")+1:]
	}
	if !s.Member() {
		s.Wins, s.Losses = 0, 0
	}
	return s
}

// eventLocation splits "@ Venue, City (Event)" style info. Info without a
// leading @ names only the event.
func eventLocation(info string) (event, location string) {
	event = RegularSeason
	rest := info
	if open := strings.LastIndex(info, "("); open >= 0 && strings.HasSuffix(info, ")") {
		event = strings.TrimSpace(info[open+1 : len(info)-1])
		rest = strings.TrimSpace(info[:open])
	}
	if strings.HasPrefix(rest, "@") {
		location = strings.TrimSpace(strings.TrimPrefix(rest, "@"))
	}
	return event, location
}

func lastCell(row *goquery.Selection) string {
	return cleanText(row.ChildrenFiltered("td").Last().Text())
}

func atoiPtr(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
