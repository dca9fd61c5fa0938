package pbp

type rawRow struct {
	clock, away, score, home string
}

func periodTable(away, home string, rows ...rawRow) Table {
	t := Table{Header: []string{"Time", away, "Score", home}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.clock, r.away, r.score, r.home})
	}
	return t
}

func linescore(awayTotal, homeTotal string) Table {
	return Table{
		Header: []string{"", "1st Half", "2nd Half", "Total"},
		Rows: [][]string{
			{"Duke", "5", "0", awayTotal},
			{"UNC", "2", "2", homeTotal},
		},
	}
}

func withSummary(line Table, periods ...Table) []Table {
	tables := []Table{{Header: []string{"Game"}}, line, {Header: []string{"Officials"}}}
	return append(tables, periods...)
}

var fixturePositions = map[string]string{
	"Allen": "G", "Baker": "F", "Cole": "C", "Dunn": "G", "Evans": "F", "Ford": "G",
	"Hill": "G", "Irwin": "F", "James": "C", "King": "G", "Lee": "F",
}

func firstHalf() Table {
	return periodTable("Duke", "UNC",
		rawRow{"20:00:00", "", "game start", ""},
		rawRow{"20:00:00", "", "period start", ""},
		rawRow{"20:00:00", "Cole, jumpball won", "0-0", ""},
		rawRow{"20:00:00", "", "0-0", "James, jumpball lost"},
		rawRow{"19:40:00", "Allen, 2pt jumpshot made", "2-0", ""},
		rawRow{"19:40:00", "Baker, assist", "2-0", ""},
		rawRow{"19:20:00", "", "2-0", "Hill, 3pt jumpshot missed"},
		rawRow{"19:18:00", "Dunn, rebound defensive", "2-0", ""},
		rawRow{"19:00:00", "Evans, turnover badpass", "2-0", ""},
		rawRow{"19:00:00", "", "2-0", "King, steal"},
		rawRow{"18:45:00", "", "2-2", "Irwin, 2pt layup fastbreak pointsinthepaint made"},
		rawRow{"18:30:00", "Cole, 2pt layup pointsinthepaint made", "4-2", ""},
		rawRow{"18:30:00", "", "4-2", "Lee, foul personal 1freethrow"},
		rawRow{"18:30:00", "Cole, foulon", "4-2", ""},
		rawRow{"18:30:00", "Cole, freethrow 1of1 made", "5-2", ""},
		rawRow{"18:10:00", "", "5-2", "Lee, 3pt jumpshot missed"},
		rawRow{"18:08:00", "Team, rebound defensive", "5-2", ""},
		rawRow{"18:08:00", "Ford, substitution in", "5-2", ""},
		rawRow{"18:08:00", "Allen, substitution out", "5-2", ""},
		rawRow{"00:00:00", "", "period end", ""},
	)
}

func secondHalf() Table {
	return periodTable("Duke", "UNC",
		rawRow{"20:00:00", "", "period start", ""},
		rawRow{"19:45:00", "", "5-2", "Moss, substitution in"},
		rawRow{"19:45:00", "", "5-2", "King, substitution out"},
		rawRow{"19:30:00", "", "5-4", "Moss, 2pt dunk made"},
		rawRow{"19:00:00", "Ford, 2pt jumpshot missed", "5-4", ""},
		rawRow{"18:58:00", "", "5-4", "Team, rebound defensive"},
		rawRow{"00:00:00", "", "game end", ""},
	)
}

func fixtureInput() Input {
	return Input{
		GameID:    "5000001",
		Tables:    withSummary(linescore("5", "4"), firstHalf(), secondHalf()),
		Positions: fixturePositions,
	}
}

// ev builds a bare event for the pass-level tests.
func ev(period int, elapsed float64, team Team, actor, action string) Event {
	return Event{Period: period, Elapsed: elapsed, Team: team, Actor: actor, Action: action, Kind: Classify(action)}
}
