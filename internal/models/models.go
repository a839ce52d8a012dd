package models

import "time"

// Run is one batch pass over a papers directory.
type Run struct {
	RunID     string    `json:"run_id"`
	Keyword   string    `json:"keyword"`
	Strategy  string    `json:"strategy"`
	Status    string    `json:"status"`
	CSVPath   string    `json:"csv_path,omitempty"`
	Processed int       `json:"processed"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Paper is the checkpoint record for one source PDF, keyed by the SHA-256
// of its bytes so renamed or moved files are still recognized as done.
type Paper struct {
	PaperHash  string    `json:"paper_hash"`
	RunID      string    `json:"run_id"`
	Path       string    `json:"path"`
	Title      string    `json:"title,omitempty"`
	Authors    string    `json:"authors,omitempty"`
	Year       string    `json:"year,omitempty"`
	Venue      string    `json:"venue,omitempty"`
	DOI        string    `json:"doi,omitempty"`
	ArxivID    string    `json:"arxiv_id,omitempty"`
	Status     string    `json:"status"`
	FailReason string    `json:"fail_reason,omitempty"`
	OutputFile string    `json:"output_file,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Paper status values.
const (
	PaperProcessing = "processing"
	PaperCompleted  = "completed"
	PaperFailed     = "failed"
)

// Run status values.
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)
