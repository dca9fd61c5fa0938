// Package csvstore keeps the season tables as CSV files in one directory,
// rewritten or appended after every change so a crawl can resume.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fortuna/ceres/internal/store"
)

const (
	gamesFile      = "games.csv"
	eventsFile     = "events.csv"
	checkpointFile = "checkpoint.csv"
)

// Store is a store.Store over CSV files.
type Store struct {
	dir string

	mu         sync.Mutex
	games      []store.SeasonGame
	byKey      map[string]int
	events     map[string][]store.EventRow
	eventOrder []string
	checkpoint map[string]bool
	ratings    map[int]store.RatingRun
}

var _ store.Store = (*Store)(nil)

// Open loads any tables already present in dir, creating it if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating checkpoint dir: %w", err)
	}
	s := &Store{
		dir:        dir,
		byKey:      map[string]int{},
		events:     map[string][]store.EventRow{},
		checkpoint: map[string]bool{},
		ratings:    map[int]store.RatingRun{},
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	games, err := readCSV(s.path(gamesFile))
	if err != nil {
		return err
	}
	for i, rec := range games {
		g, err := decodeGame(rec)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", gamesFile, i+1, err)
		}
		s.byKey[g.Key()] = len(s.games)
		s.games = append(s.games, g)
	}

	events, err := readCSV(s.path(eventsFile))
	if err != nil {
		return err
	}
	for i, rec := range events {
		e, err := decodeEvent(rec)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", eventsFile, i+1, err)
		}
		if _, ok := s.events[e.GameID]; !ok {
			s.eventOrder = append(s.eventOrder, e.GameID)
		}
		s.events[e.GameID] = append(s.events[e.GameID], e)
	}

	checkpoints, err := readCSV(s.path(checkpointFile))
	if err != nil {
		return err
	}
	for _, rec := range checkpoints {
		if len(rec) == 2 {
			s.checkpoint[rec[0]+"|"+rec[1]] = true
		}
	}

	matches, err := filepath.Glob(filepath.Join(s.dir, "ratings_d*.csv"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		records, err := readCSV(path)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			continue
		}
		run, err := decodeRatings(records)
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		s.ratings[run.Division] = run
	}
	return nil
}

func (s *Store) UpsertGames(_ context.Context, games []store.SeasonGame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range games {
		if i, ok := s.byKey[g.Key()]; ok {
			prev := s.games[i]
			g.AwayPPP, g.HomePPP, g.Source = prev.AwayPPP, prev.HomePPP, prev.Source
			s.games[i] = g
			continue
		}
		s.byKey[g.Key()] = len(s.games)
		s.games = append(s.games, g)
	}
	return s.writeGames()
}

func (s *Store) RecordResult(_ context.Context, res store.GameResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for i := range s.games {
		if s.games[i].GameID != res.GameID {
			continue
		}
		s.games[i].AwayPPP, s.games[i].HomePPP, s.games[i].Source = res.AwayPPP, res.HomePPP, res.Source
		found = true
	}
	if !found {
		return fmt.Errorf("game %s: %w", res.GameID, store.ErrNotFound)
	}
	return s.writeGames()
}

func (s *Store) Games(_ context.Context, f store.GameFilter) ([]store.SeasonGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []store.SeasonGame
	for _, g := range s.games {
		if f.Match(g) {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Division < out[j].Division
	})
	return out, nil
}

// ReplaceEvents appends the rows of a new game. Replacing a game already
// on disk rewrites the whole file.
func (s *Store) ReplaceEvents(_ context.Context, gameID string, rows []store.EventRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, existed := s.events[gameID]
	stored := make([]store.EventRow, len(rows))
	copy(stored, rows)
	for i := range stored {
		stored[i].GameID = gameID
	}
	s.events[gameID] = stored

	if existed {
		return s.writeEvents()
	}
	s.eventOrder = append(s.eventOrder, gameID)
	records := make([][]string, 0, len(stored))
	for _, e := range stored {
		records = append(records, encodeEvent(e))
	}
	return appendCSV(s.path(eventsFile), eventHeader, records)
}

func (s *Store) Events(_ context.Context, gameID string) ([]store.EventRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.events[gameID]
	if !ok {
		return nil, fmt.Errorf("events for game %s: %w", gameID, store.ErrNotFound)
	}
	out := make([]store.EventRow, len(rows))
	copy(out, rows)
	return out, nil
}

func (s *Store) MarkDateComplete(_ context.Context, day time.Time, division int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := []string{day.Format(time.DateOnly), fmt.Sprint(division)}
	key := rec[0] + "|" + rec[1]
	if s.checkpoint[key] {
		return nil
	}
	s.checkpoint[key] = true
	return appendCSV(s.path(checkpointFile), checkpointHeader, [][]string{rec})
}

func (s *Store) DateComplete(_ context.Context, day time.Time, division int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkpoint[fmt.Sprintf("%s|%d", day.Format(time.DateOnly), division)], nil
}

// SaveRatings replaces the stored run for the division.
func (s *Store) SaveRatings(_ context.Context, run store.RatingRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	path := s.path(fmt.Sprintf("ratings_d%d.csv", run.Division))
	if err := writeCSV(path, ratingHeader, encodeRatings(run)); err != nil {
		return err
	}
	s.ratings[run.Division] = run
	return nil
}

func (s *Store) LatestRatings(_ context.Context, division int) (store.RatingRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.ratings[division]
	if !ok {
		return store.RatingRun{}, fmt.Errorf("ratings for division %d: %w", division, store.ErrNotFound)
	}
	return run, nil
}

func (s *Store) Close() error { return nil }

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Store) writeGames() error {
	records := make([][]string, 0, len(s.games))
	for _, g := range s.games {
		records = append(records, encodeGame(g))
	}
	return writeCSV(s.path(gamesFile), gameHeader, records)
}

func (s *Store) writeEvents() error {
	var records [][]string
	for _, id := range s.eventOrder {
		for _, e := range s.events[id] {
			records = append(records, encodeEvent(e))
		}
	}
	return writeCSV(s.path(eventsFile), eventHeader, records)
}

// readCSV returns the data rows of a file, or nothing if it does not exist.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

// writeCSV replaces path atomically.
func writeCSV(path string, header []string, records [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return err
	}
	if err := w.WriteAll(records); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func appendCSV(path string, header []string, records [][]string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("appending %s: %w", path, err)
	}
	return f.Close()
}
