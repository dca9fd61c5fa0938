package rating

import "errors"

var (
	ErrNoGames       = errors.New("no games to rate")
	ErrDuplicateGame = errors.New("game id repeated within a team's schedule")
	ErrInvalidPPP    = errors.New("points per possession must be positive and finite")
)
