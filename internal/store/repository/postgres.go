package repository

import (
	"context"
	"time"

	"github.com/fortuna/ceres/internal/store"
)

// Postgres implements store.Store on top of the repositories.
type Postgres struct {
	db      *store.Database
	games   *GameRepository
	events  *EventRepository
	ratings *RatingRepository
}

var _ store.Store = (*Postgres)(nil)

// NewPostgres wires the repositories over one connection.
func NewPostgres(db *store.Database) *Postgres {
	return &Postgres{
		db:      db,
		games:   NewGameRepository(db),
		events:  NewEventRepository(db),
		ratings: NewRatingRepository(db),
	}
}

func (p *Postgres) UpsertGames(ctx context.Context, games []store.SeasonGame) error {
	return p.games.Upsert(ctx, games)
}

func (p *Postgres) RecordResult(ctx context.Context, result store.GameResult) error {
	return p.games.RecordResult(ctx, result)
}

func (p *Postgres) Games(ctx context.Context, filter store.GameFilter) ([]store.SeasonGame, error) {
	return p.games.List(ctx, filter)
}

func (p *Postgres) ReplaceEvents(ctx context.Context, gameID string, rows []store.EventRow) error {
	return p.events.Replace(ctx, gameID, rows)
}

func (p *Postgres) Events(ctx context.Context, gameID string) ([]store.EventRow, error) {
	return p.events.ByGame(ctx, gameID)
}

func (p *Postgres) MarkDateComplete(ctx context.Context, day time.Time, division int) error {
	return p.games.MarkDateComplete(ctx, day, division)
}

func (p *Postgres) DateComplete(ctx context.Context, day time.Time, division int) (bool, error) {
	return p.games.DateComplete(ctx, day, division)
}

func (p *Postgres) SaveRatings(ctx context.Context, run store.RatingRun) error {
	return p.ratings.Save(ctx, run)
}

func (p *Postgres) LatestRatings(ctx context.Context, division int) (store.RatingRun, error) {
	return p.ratings.Latest(ctx, division)
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
