package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fortuna/ceres/internal/store"
)

// GameReader is the read side of the season store.
type GameReader interface {
	Games(ctx context.Context, filter store.GameFilter) ([]store.SeasonGame, error)
	Events(ctx context.Context, gameID string) ([]store.EventRow, error)
}

// GameService serves season games and their timelines.
type GameService struct {
	store GameReader
}

// NewGameService creates a new game service
func NewGameService(st GameReader) *GameService {
	return &GameService{store: st}
}

// ListGames returns season games matching the filter.
func (s *GameService) ListGames(ctx context.Context, filter store.GameFilter) ([]store.SeasonGame, error) {
	games, err := s.store.Games(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetching games: %w", err)
	}
	return games, nil
}

// GetGame retrieves one game by its contest id.
func (s *GameService) GetGame(ctx context.Context, gameID string) (*store.SeasonGame, error) {
	games, err := s.store.Games(ctx, store.GameFilter{GameID: gameID})
	if err != nil {
		return nil, fmt.Errorf("fetching game: %w", err)
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("game %s: %w", gameID, store.ErrNotFound)
	}
	return &games[0], nil
}

// GetTimeline returns the game with its stored timeline rows. A game
// rated from the box score has no rows.
func (s *GameService) GetTimeline(ctx context.Context, gameID string) (*GameTimeline, error) {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	events, err := s.store.Events(ctx, gameID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("fetching timeline: %w", err)
	}
	if events == nil {
		events = []store.EventRow{}
	}
	return &GameTimeline{Game: game, Events: events}, nil
}

// GetTeamSchedule retrieves every game of one team in a division.
func (s *GameService) GetTeamSchedule(ctx context.Context, team string, division int) ([]store.SeasonGame, error) {
	return s.ListGames(ctx, store.GameFilter{Team: team, Division: division})
}

// GameTimeline contains a game with its timeline rows
type GameTimeline struct {
	Game   *store.SeasonGame `json:"game"`
	Events []store.EventRow  `json:"events"`
}
