package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fortuna/ceres/internal/store"
)

// GameRepository handles the season games table and the crawl checkpoint.
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

const gameColumns = `game_date, division, away_team, home_team, game_time, event, status,
	attendance, location, away_seed, away_score, away_wins, away_losses, away_id,
	home_seed, home_score, home_wins, home_losses, home_id, game_id,
	away_ppp, home_ppp, source`

// Upsert inserts scoreboard entries or refreshes them. Recorded results are
// left untouched.
func (r *GameRepository) Upsert(ctx context.Context, games []store.SeasonGame) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO season_games (` + gameColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, NULL, NULL, NULL)
		ON CONFLICT (game_date, division, away_team, home_team) DO UPDATE SET
			game_time = EXCLUDED.game_time,
			event = EXCLUDED.event,
			status = EXCLUDED.status,
			attendance = EXCLUDED.attendance,
			location = EXCLUDED.location,
			away_seed = EXCLUDED.away_seed,
			away_score = EXCLUDED.away_score,
			away_wins = EXCLUDED.away_wins,
			away_losses = EXCLUDED.away_losses,
			away_id = EXCLUDED.away_id,
			home_seed = EXCLUDED.home_seed,
			home_score = EXCLUDED.home_score,
			home_wins = EXCLUDED.home_wins,
			home_losses = EXCLUDED.home_losses,
			home_id = EXCLUDED.home_id,
			game_id = EXCLUDED.game_id,
			updated_at = NOW()
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing game upsert: %w", err)
	}
	defer stmt.Close()

	for _, g := range games {
		_, err := stmt.ExecContext(ctx,
			g.Date, g.Division, g.AwayTeam, g.HomeTeam, nullString(g.Time), nullString(g.Event), g.Status,
			nullInt(g.Attendance), nullString(g.Location),
			nullInt(g.AwaySeed), g.AwayScore, g.AwayWins, g.AwayLosses, nullString(g.AwayID),
			nullInt(g.HomeSeed), g.HomeScore, g.HomeWins, g.HomeLosses, nullString(g.HomeID),
			nullString(g.GameID),
		)
		if err != nil {
			return fmt.Errorf("upserting game %s: %w", g.Key(), err)
		}
	}
	return tx.Commit()
}

// RecordResult stores the ppp values and their source for one game id.
func (r *GameRepository) RecordResult(ctx context.Context, res store.GameResult) error {
	result, err := r.db.DB().ExecContext(ctx, `
		UPDATE season_games
		SET away_ppp = $2, home_ppp = $3, source = $4, updated_at = NOW()
		WHERE game_id = $1
	`, res.GameID, res.AwayPPP, res.HomePPP, res.Source)
	if err != nil {
		return fmt.Errorf("recording result: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("game %s: %w", res.GameID, store.ErrNotFound)
	}
	return nil
}

// List returns season games matching the filter, ordered by date.
func (r *GameRepository) List(ctx context.Context, f store.GameFilter) ([]store.SeasonGame, error) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if f.Division != 0 {
		add("division = $%d", f.Division)
	}
	if !f.Date.IsZero() {
		add("game_date = $%d", f.Date)
	}
	if f.GameID != "" {
		add("game_id = $%d", f.GameID)
	}
	if f.Team != "" {
		args = append(args, f.Team)
		where = append(where, fmt.Sprintf("(away_team = $%d OR home_team = $%d)", len(args), len(args)))
	}

	query := "SELECT " + gameColumns + " FROM season_games"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY game_date, division, game_time"

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()
	return scanGames(rows)
}

// MarkDateComplete records that every game of a date and division is done.
func (r *GameRepository) MarkDateComplete(ctx context.Context, day time.Time, division int) error {
	_, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO crawl_checkpoints (game_date, division)
		VALUES ($1, $2)
		ON CONFLICT (game_date, division) DO UPDATE SET completed_at = NOW()
	`, day, division)
	if err != nil {
		return fmt.Errorf("marking date complete: %w", err)
	}
	return nil
}

// DateComplete reports whether a date and division were finished earlier.
func (r *GameRepository) DateComplete(ctx context.Context, day time.Time, division int) (bool, error) {
	var exists bool
	err := r.db.DB().QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM crawl_checkpoints WHERE game_date = $1 AND division = $2)",
		day, division).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("querying checkpoint: %w", err)
	}
	return exists, nil
}

func scanGames(rows *sql.Rows) ([]store.SeasonGame, error) {
	var games []store.SeasonGame
	for rows.Next() {
		var (
			g                              store.SeasonGame
			gameTime, event, location      sql.NullString
			awayID, homeID, gameID, source sql.NullString
			attendance, awaySeed, homeSeed sql.NullInt64
			awayScore, homeScore           sql.NullInt64
			awayWins, awayLosses           sql.NullInt64
			homeWins, homeLosses           sql.NullInt64
			awayPPP, homePPP               sql.NullFloat64
		)
		err := rows.Scan(
			&g.Date, &g.Division, &g.AwayTeam, &g.HomeTeam, &gameTime, &event, &g.Status,
			&attendance, &location, &awaySeed, &awayScore, &awayWins, &awayLosses, &awayID,
			&homeSeed, &homeScore, &homeWins, &homeLosses, &homeID, &gameID,
			&awayPPP, &homePPP, &source,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		g.Time, g.Event, g.Location = gameTime.String, event.String, location.String
		g.AwayID, g.HomeID, g.GameID, g.Source = awayID.String, homeID.String, gameID.String, source.String
		g.Attendance = int(attendance.Int64)
		g.AwaySeed, g.HomeSeed = int(awaySeed.Int64), int(homeSeed.Int64)
		g.AwayWins, g.AwayLosses = int(awayWins.Int64), int(awayLosses.Int64)
		g.HomeWins, g.HomeLosses = int(homeWins.Int64), int(homeLosses.Int64)
		g.AwayScore, g.HomeScore = intPtr(awayScore), intPtr(homeScore)
		g.AwayPPP, g.HomePPP = floatPtr(awayPPP), floatPtr(homePPP)
		games = append(games, g)
	}
	return games, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
