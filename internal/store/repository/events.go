package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/ceres/internal/store"
	"github.com/lib/pq"
)

// EventRepository handles the season event table.
type EventRepository struct {
	db *store.Database
}

func NewEventRepository(db *store.Database) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `game_id, seq, away_team, home_team, division, period, clock, seconds,
	away_score, home_score, event, player, player_2, event_2, possession, poss_count,
	shot_value, shot_type, made, is_transition, is_paint, second_chance, is_garbage_time,
	away_lineup, home_lineup`

// Replace swaps the stored rows of one game for rows, in one transaction.
func (r *EventRepository) Replace(ctx context.Context, gameID string, rows []store.EventRow) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM timeline_events WHERE game_id = $1", gameID); err != nil {
		return fmt.Errorf("clearing events: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("timeline_events",
		"game_id", "seq", "away_team", "home_team", "division", "period", "clock", "seconds",
		"away_score", "home_score", "event", "player", "player_2", "event_2", "possession", "poss_count",
		"shot_value", "shot_type", "made", "is_transition", "is_paint", "second_chance", "is_garbage_time",
		"away_lineup", "home_lineup"))
	if err != nil {
		return fmt.Errorf("preparing copy: %w", err)
	}
	for _, e := range rows {
		var (
			shotValue, shotType          any
			made, transition, paint, sec any
		)
		if e.ShotValue > 0 {
			shotValue, shotType = e.ShotValue, nullString(e.ShotType)
			made, transition, paint, sec = e.Made, e.IsTransition, e.IsPaint, e.SecondChance
		}
		_, err := stmt.ExecContext(ctx,
			gameID, e.Seq, e.AwayTeam, e.HomeTeam, e.Division, e.Period, e.Time, e.Seconds,
			e.AwayScore, e.HomeScore, e.Event, nullString(e.Player), nullString(e.Player2), nullString(e.Event2),
			nullString(e.Possession), e.PossCount,
			shotValue, shotType, made, transition, paint, sec, e.IsGarbageTime,
			pq.Array(e.Away[:]), pq.Array(e.Home[:]),
		)
		if err != nil {
			stmt.Close()
			return fmt.Errorf("copying event %d: %w", e.Seq, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("flushing copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("closing copy: %w", err)
	}
	return tx.Commit()
}

// ByGame returns the stored timeline of one game in sequence order.
func (r *EventRepository) ByGame(ctx context.Context, gameID string) ([]store.EventRow, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		"SELECT "+eventColumns+" FROM timeline_events WHERE game_id = $1 ORDER BY seq", gameID)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var out []store.EventRow
	for rows.Next() {
		var (
			e                                   store.EventRow
			player, player2, event2, possession sql.NullString
			shotType                            sql.NullString
			shotValue                           sql.NullInt64
			made, transition, paint, sec        sql.NullBool
			away, home                          []string
		)
		err := rows.Scan(
			&e.GameID, &e.Seq, &e.AwayTeam, &e.HomeTeam, &e.Division, &e.Period, &e.Time, &e.Seconds,
			&e.AwayScore, &e.HomeScore, &e.Event, &player, &player2, &event2, &possession, &e.PossCount,
			&shotValue, &shotType, &made, &transition, &paint, &sec, &e.IsGarbageTime,
			pq.Array(&away), pq.Array(&home),
		)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e.Player, e.Player2, e.Event2, e.Possession = player.String, player2.String, event2.String, possession.String
		e.ShotValue, e.ShotType = int(shotValue.Int64), shotType.String
		e.Made, e.IsTransition, e.IsPaint, e.SecondChance = made.Bool, transition.Bool, paint.Bool, sec.Bool
		copy(e.Away[:], away)
		copy(e.Home[:], home)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("events for game %s: %w", gameID, store.ErrNotFound)
	}
	return out, nil
}
