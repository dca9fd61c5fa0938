package csvstore

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fortuna/ceres/internal/store"
)

var gameHeader = []string{
	"Date", "Time", "Event", "Division", "Status", "Attendance", "Location",
	"Away_Seed", "Away_Team", "Away_Score", "Home_Seed", "Home_Team", "Home_Score",
	"Away_Wins", "Away_Losses", "Home_Wins", "Home_Losses",
	"Away_id", "Home_id", "Game_id", "Away_ppp", "Home_ppp", "Source",
}

var eventHeader = []string{
	"Period", "Time", "Seconds", "Away_Score", "Home_Score", "Event",
	"Player", "Player_2", "Event_2", "Possession", "Poss_Count",
	"Shot_Value", "Shot_Type", "Made", "is_Transition", "is_Paint", "2nd_Chance", "is_Garbage_Time",
	"Away_1", "Away_2", "Away_3", "Away_4", "Away_5",
	"Home_1", "Home_2", "Home_3", "Home_4", "Home_5",
	"Id", "Seq", "Away", "Home", "Division",
}

var ratingHeader = []string{"Run_Id", "Sport", "Division", "Games_Total", "Created_At", "Rank", "Team", "Games", "AdjO", "AdjD", "AdjEM"}

var checkpointHeader = []string{"Date", "Division"}

func encodeGame(g store.SeasonGame) []string {
	return []string{
		g.Date.Format(time.DateOnly), g.Time, g.Event, strconv.Itoa(g.Division), g.Status,
		optInt(g.Attendance), g.Location,
		optInt(g.AwaySeed), g.AwayTeam, ptrInt(g.AwayScore), optInt(g.HomeSeed), g.HomeTeam, ptrInt(g.HomeScore),
		strconv.Itoa(g.AwayWins), strconv.Itoa(g.AwayLosses), strconv.Itoa(g.HomeWins), strconv.Itoa(g.HomeLosses),
		g.AwayID, g.HomeID, g.GameID, ptrFloat(g.AwayPPP), ptrFloat(g.HomePPP), g.Source,
	}
}

func decodeGame(rec []string) (store.SeasonGame, error) {
	if len(rec) != len(gameHeader) {
		return store.SeasonGame{}, fmt.Errorf("game row has %d fields, want %d", len(rec), len(gameHeader))
	}
	date, err := time.Parse(time.DateOnly, rec[0])
	if err != nil {
		return store.SeasonGame{}, fmt.Errorf("game date: %w", err)
	}
	return store.SeasonGame{
		Date:       date,
		Time:       rec[1],
		Event:      rec[2],
		Division:   atoi(rec[3]),
		Status:     rec[4],
		Attendance: atoi(rec[5]),
		Location:   rec[6],
		AwaySeed:   atoi(rec[7]),
		AwayTeam:   rec[8],
		AwayScore:  parsePtrInt(rec[9]),
		HomeSeed:   atoi(rec[10]),
		HomeTeam:   rec[11],
		HomeScore:  parsePtrInt(rec[12]),
		AwayWins:   atoi(rec[13]),
		AwayLosses: atoi(rec[14]),
		HomeWins:   atoi(rec[15]),
		HomeLosses: atoi(rec[16]),
		AwayID:     rec[17],
		HomeID:     rec[18],
		GameID:     rec[19],
		AwayPPP:    parsePtrFloat(rec[20]),
		HomePPP:    parsePtrFloat(rec[21]),
		Source:     rec[22],
	}, nil
}

func encodeEvent(e store.EventRow) []string {
	rec := []string{
		strconv.Itoa(e.Period), e.Time, formatFloat(e.Seconds),
		strconv.Itoa(e.AwayScore), strconv.Itoa(e.HomeScore), e.Event,
		e.Player, e.Player2, e.Event2, e.Possession, strconv.Itoa(e.PossCount),
		"", "", "", "", "", "", strconv.FormatBool(e.IsGarbageTime),
	}
	if e.ShotValue > 0 {
		rec[11] = strconv.Itoa(e.ShotValue)
		rec[12] = e.ShotType
		rec[13] = strconv.FormatBool(e.Made)
		rec[14] = strconv.FormatBool(e.IsTransition)
		rec[15] = strconv.FormatBool(e.IsPaint)
		rec[16] = strconv.FormatBool(e.SecondChance)
	}
	rec = append(rec, e.Away[:]...)
	rec = append(rec, e.Home[:]...)
	return append(rec, e.GameID, strconv.Itoa(e.Seq), e.AwayTeam, e.HomeTeam, strconv.Itoa(e.Division))
}

func decodeEvent(rec []string) (store.EventRow, error) {
	if len(rec) != len(eventHeader) {
		return store.EventRow{}, fmt.Errorf("event row has %d fields, want %d", len(rec), len(eventHeader))
	}
	e := store.EventRow{
		Period:        atoi(rec[0]),
		Time:          rec[1],
		Seconds:       atof(rec[2]),
		AwayScore:     atoi(rec[3]),
		HomeScore:     atoi(rec[4]),
		Event:         rec[5],
		Player:        rec[6],
		Player2:       rec[7],
		Event2:        rec[8],
		Possession:    rec[9],
		PossCount:     atoi(rec[10]),
		ShotValue:     atoi(rec[11]),
		ShotType:      rec[12],
		Made:          rec[13] == "true",
		IsTransition:  rec[14] == "true",
		IsPaint:       rec[15] == "true",
		SecondChance:  rec[16] == "true",
		IsGarbageTime: rec[17] == "true",
		GameID:        rec[28],
		Seq:           atoi(rec[29]),
		AwayTeam:      rec[30],
		HomeTeam:      rec[31],
		Division:      atoi(rec[32]),
	}
	copy(e.Away[:], rec[18:23])
	copy(e.Home[:], rec[23:28])
	return e, nil
}

func encodeRatings(run store.RatingRun) [][]string {
	out := make([][]string, 0, len(run.Results))
	for _, r := range run.Results {
		out = append(out, []string{
			run.ID, run.Sport, strconv.Itoa(run.Division), strconv.Itoa(run.Games),
			run.CreatedAt.UTC().Format(time.RFC3339),
			strconv.Itoa(r.Rank), r.Team, strconv.Itoa(r.Games),
			formatFloat(r.AdjO), formatFloat(r.AdjD), formatFloat(r.AdjEM),
		})
	}
	return out
}

func decodeRatings(records [][]string) (store.RatingRun, error) {
	var run store.RatingRun
	for i, rec := range records {
		if len(rec) != len(ratingHeader) {
			return run, fmt.Errorf("rating row %d has %d fields, want %d", i, len(rec), len(ratingHeader))
		}
		if i == 0 {
			created, err := time.Parse(time.RFC3339, rec[4])
			if err != nil {
				return run, fmt.Errorf("rating run time: %w", err)
			}
			run.ID, run.Sport, run.Division, run.Games, run.CreatedAt = rec[0], rec[1], atoi(rec[2]), atoi(rec[3]), created
		}
		run.Results = append(run.Results, store.RatingRow{
			Rank:  atoi(rec[5]),
			Team:  rec[6],
			Games: atoi(rec[7]),
			AdjO:  atof(rec[8]),
			AdjD:  atof(rec[9]),
			AdjEM: atof(rec[10]),
		})
	}
	return run, nil
}

func optInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func ptrInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func ptrFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func parsePtrInt(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func parsePtrFloat(s string) *float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
