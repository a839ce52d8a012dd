package storage

import (
	"context"
	"fmt"

	"litscan/internal/models"
)

type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) CreateRun(ctx context.Context, run models.Run) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO runs (run_id, keyword, strategy, status, csv_path)
VALUES ($1, $2, $3, $4, NULLIF($5,''))`,
		run.RunID, run.Keyword, run.Strategy, run.Status, run.CSVPath)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (r *RunRepo) UpdateRun(ctx context.Context, runID, status, csvPath string, processed, skipped, failed int) error {
	_, err := r.db.Pool.Exec(ctx, `
UPDATE runs SET status=$2, csv_path=COALESCE(NULLIF($3,''), csv_path),
  processed=$4, skipped=$5, failed=$6, updated_at=NOW()
WHERE run_id=$1`, runID, status, csvPath, processed, skipped, failed)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

func (r *RunRepo) GetRun(ctx context.Context, runID string) (models.Run, error) {
	var run models.Run
	err := r.db.Pool.QueryRow(ctx, `
SELECT run_id::text, keyword, strategy, status, COALESCE(csv_path,''), processed, skipped, failed, created_at, updated_at
FROM runs WHERE run_id=$1`, runID).
		Scan(&run.RunID, &run.Keyword, &run.Strategy, &run.Status, &run.CSVPath, &run.Processed, &run.Skipped, &run.Failed, &run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return models.Run{}, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

func (r *RunRepo) ListRuns(ctx context.Context) ([]models.Run, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT run_id::text, keyword, strategy, status, COALESCE(csv_path,''), processed, skipped, failed, created_at, updated_at
FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	out := make([]models.Run, 0)
	for rows.Next() {
		var run models.Run
		if err := rows.Scan(&run.RunID, &run.Keyword, &run.Strategy, &run.Status, &run.CSVPath, &run.Processed, &run.Skipped, &run.Failed, &run.CreatedAt, &run.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}
