package store

import (
	"github.com/fortuna/ceres/internal/pbp"
)

// EventRowsFromTimeline flattens a timeline for the season event table.
func EventRowsFromTimeline(tl pbp.Timeline, division int) []EventRow {
	rows := make([]EventRow, 0, len(tl.Events))
	for i, e := range tl.Events {
		row := EventRow{
			GameID:        tl.GameID,
			Seq:           i,
			AwayTeam:      tl.AwayTeam,
			HomeTeam:      tl.HomeTeam,
			Division:      division,
			Period:        e.Period,
			Time:          e.Clock,
			Seconds:       e.Elapsed,
			AwayScore:     e.AwayScore,
			HomeScore:     e.HomeScore,
			Event:         e.Action,
			Player:        e.Actor,
			Player2:       e.Actor2,
			Event2:        e.Action2,
			PossCount:     e.Possession.Seq,
			IsGarbageTime: e.Garbage,
		}
		switch e.Possession.Owner {
		case pbp.TeamAway:
			row.Possession = tl.AwayTeam
		case pbp.TeamHome:
			row.Possession = tl.HomeTeam
		}
		if s := e.Shot; s != nil {
			row.ShotValue = s.Value
			row.ShotType = s.Category
			row.Made = s.Made
			row.IsTransition = s.Transition
			row.IsPaint = s.Paint
			row.SecondChance = s.SecondChance
		}
		copy(row.Away[:], e.AwayLineup)
		copy(row.Home[:], e.HomeLineup)
		rows = append(rows, row)
	}
	return rows
}
