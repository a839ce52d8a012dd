package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"litscan/internal/models"
)

type PaperRepo struct {
	db *DB
}

func NewPaperRepo(db *DB) *PaperRepo {
	return &PaperRepo{db: db}
}

func (r *PaperRepo) UpsertPaper(ctx context.Context, p models.Paper) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO papers (paper_hash, run_id, path, title, authors, year, venue, doi, arxiv_id, status, fail_reason, output_file)
VALUES ($1, $2, $3, NULLIF($4,''), NULLIF($5,''), NULLIF($6,''), NULLIF($7,''), NULLIF($8,''), NULLIF($9,''), $10, NULLIF($11,''), NULLIF($12,''))
ON CONFLICT (paper_hash)
DO UPDATE SET
  run_id = EXCLUDED.run_id,
  path = EXCLUDED.path,
  title = COALESCE(EXCLUDED.title, papers.title),
  authors = COALESCE(EXCLUDED.authors, papers.authors),
  year = COALESCE(EXCLUDED.year, papers.year),
  venue = COALESCE(EXCLUDED.venue, papers.venue),
  doi = COALESCE(EXCLUDED.doi, papers.doi),
  arxiv_id = COALESCE(EXCLUDED.arxiv_id, papers.arxiv_id),
  status = EXCLUDED.status,
  fail_reason = EXCLUDED.fail_reason,
  output_file = COALESCE(EXCLUDED.output_file, papers.output_file),
  updated_at = NOW()`,
		p.PaperHash, p.RunID, p.Path, p.Title, p.Authors, p.Year, p.Venue, p.DOI, p.ArxivID, p.Status, p.FailReason, p.OutputFile,
	)
	if err != nil {
		return fmt.Errorf("upsert paper: %w", err)
	}
	return nil
}

// IsCompleted reports whether the hash already has a completed record, which
// is what makes batch re-runs skip finished documents.
func (r *PaperRepo) IsCompleted(ctx context.Context, paperHash string) (bool, error) {
	var status string
	err := r.db.Pool.QueryRow(ctx, `SELECT status FROM papers WHERE paper_hash=$1`, paperHash).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check paper status: %w", err)
	}
	return status == models.PaperCompleted, nil
}

func (r *PaperRepo) MarkCompleted(ctx context.Context, paperHash, outputFile string) error {
	_, err := r.db.Pool.Exec(ctx, `
UPDATE papers SET status=$2, output_file=NULLIF($3,''), fail_reason=NULL, updated_at=NOW() WHERE paper_hash=$1`,
		paperHash, models.PaperCompleted, outputFile)
	if err != nil {
		return fmt.Errorf("mark paper completed: %w", err)
	}
	return nil
}

func (r *PaperRepo) MarkFailed(ctx context.Context, paperHash, failReason string) error {
	_, err := r.db.Pool.Exec(ctx, `
UPDATE papers SET status=$2, fail_reason=NULLIF($3,''), updated_at=NOW() WHERE paper_hash=$1`,
		paperHash, models.PaperFailed, failReason)
	if err != nil {
		return fmt.Errorf("mark paper failed: %w", err)
	}
	return nil
}

func (r *PaperRepo) ListPapersByRun(ctx context.Context, runID string) ([]models.Paper, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT paper_hash, run_id::text, path, COALESCE(title,''), COALESCE(authors,''), COALESCE(year,''),
       COALESCE(venue,''), COALESCE(doi,''), COALESCE(arxiv_id,''), status, COALESCE(fail_reason,''),
       COALESCE(output_file,''), created_at, updated_at
FROM papers
WHERE run_id=$1
ORDER BY created_at`, runID)
	if err != nil {
		return nil, fmt.Errorf("list papers: %w", err)
	}
	defer rows.Close()

	out := make([]models.Paper, 0)
	for rows.Next() {
		var p models.Paper
		if err := rows.Scan(&p.PaperHash, &p.RunID, &p.Path, &p.Title, &p.Authors, &p.Year, &p.Venue, &p.DOI, &p.ArxivID, &p.Status, &p.FailReason, &p.OutputFile, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan paper: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate papers: %w", err)
	}
	return out, nil
}

func (r *PaperRepo) ListFailedPapers(ctx context.Context, runID string) ([]models.Paper, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT paper_hash, run_id::text, path, COALESCE(title,''), COALESCE(authors,''), COALESCE(year,''),
       COALESCE(venue,''), COALESCE(doi,''), COALESCE(arxiv_id,''), status, COALESCE(fail_reason,''),
       COALESCE(output_file,''), created_at, updated_at
FROM papers
WHERE run_id=$1 AND status='failed'
ORDER BY updated_at DESC`, runID)
	if err != nil {
		return nil, fmt.Errorf("list failed papers: %w", err)
	}
	defer rows.Close()
	out := make([]models.Paper, 0)
	for rows.Next() {
		var p models.Paper
		if err := rows.Scan(&p.PaperHash, &p.RunID, &p.Path, &p.Title, &p.Authors, &p.Year, &p.Venue, &p.DOI, &p.ArxivID, &p.Status, &p.FailReason, &p.OutputFile, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan failed paper: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
