package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fortuna/ceres/internal/store"
)

// RatingRepository handles rating runs and their results.
type RatingRepository struct {
	db *store.Database
}

func NewRatingRepository(db *store.Database) *RatingRepository {
	return &RatingRepository{db: db}
}

// Save stores a run and all its rows.
func (r *RatingRepository) Save(ctx context.Context, run store.RatingRun) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO rating_runs (run_id, sport, division, games, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, run.ID, run.Sport, run.Division, run.Games, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting rating run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ratings (run_id, rank, team, games, adj_o, adj_d, adj_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)
	if err != nil {
		return fmt.Errorf("preparing rating insert: %w", err)
	}
	defer stmt.Close()
	for _, row := range run.Results {
		if _, err := stmt.ExecContext(ctx, run.ID, row.Rank, row.Team, row.Games, row.AdjO, row.AdjD, row.AdjEM); err != nil {
			return fmt.Errorf("inserting rating for %s: %w", row.Team, err)
		}
	}
	return tx.Commit()
}

// Latest returns the newest run for a division.
func (r *RatingRepository) Latest(ctx context.Context, division int) (store.RatingRun, error) {
	var run store.RatingRun
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT run_id, sport, division, games, created_at
		FROM rating_runs
		WHERE division = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, division).Scan(&run.ID, &run.Sport, &run.Division, &run.Games, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return run, fmt.Errorf("ratings for division %d: %w", division, store.ErrNotFound)
	}
	if err != nil {
		return run, fmt.Errorf("querying rating run: %w", err)
	}

	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT rank, team, games, adj_o, adj_d, adj_em
		FROM ratings
		WHERE run_id = $1
		ORDER BY rank
	`, run.ID)
	if err != nil {
		return run, fmt.Errorf("querying ratings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var row store.RatingRow
		if err := rows.Scan(&row.Rank, &row.Team, &row.Games, &row.AdjO, &row.AdjD, &row.AdjEM); err != nil {
			return run, fmt.Errorf("scanning rating: %w", err)
		}
		run.Results = append(run.Results, row)
	}
	return run, rows.Err()
}
