package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

// Store persists the season tables. Implementations persist after every
// call so an interrupted crawl resumes where it stopped.
type Store interface {
	UpsertGames(ctx context.Context, games []SeasonGame) error
	RecordResult(ctx context.Context, result GameResult) error
	Games(ctx context.Context, filter GameFilter) ([]SeasonGame, error)

	// ReplaceEvents stores the timeline rows of one game, dropping any
	// rows previously stored for it.
	ReplaceEvents(ctx context.Context, gameID string, rows []EventRow) error
	Events(ctx context.Context, gameID string) ([]EventRow, error)

	MarkDateComplete(ctx context.Context, day time.Time, division int) error
	DateComplete(ctx context.Context, day time.Time, division int) (bool, error)

	SaveRatings(ctx context.Context, run RatingRun) error
	LatestRatings(ctx context.Context, division int) (RatingRun, error)

	Close() error
}
