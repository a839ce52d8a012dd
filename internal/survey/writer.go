package survey

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"litscan/internal/util"
)

// MergedWriter serializes appends to the shared survey CSV. All workers
// funnel through one writer so rows never interleave mid-line.
type MergedWriter struct {
	path string

	mu            sync.Mutex
	headerWritten bool
}

// NewMergedWriter opens (or adopts) the merged CSV at path. An existing
// non-empty file is treated as already carrying the header, so re-runs
// append instead of duplicating it.
func NewMergedWriter(path string) (*MergedWriter, error) {
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	w := &MergedWriter{path: path}
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		w.headerWritten = true
	}
	return w, nil
}

func (w *MergedWriter) Path() string { return w.path }

// Append writes one record, emitting the header first if the file is new.
func (w *MergedWriter) Append(rec Record) error {
	if len(rec) != len(Columns) {
		return fmt.Errorf("record has %d columns, want %d", len(rec), len(Columns))
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open merged csv: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if !w.headerWritten {
		if err := cw.Write(Columns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		w.headerWritten = true
	}
	if err := cw.Write(rec); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// MergedCSVPath names the run's output file with an hour-resolution stamp
// so restarts within the same hour resume the same file.
func MergedCSVPath(exportRoot string, now time.Time) string {
	return filepath.Join(exportRoot, now.Format("2006-01-02-15")+"-merged_papers.csv")
}

var unsafeFilenameRe = regexp.MustCompile(`[\/\\:*?"<>|]`)

// BackupPath names the per-paper backup copy of a single record.
func BackupPath(exportRoot, title string, now time.Time) string {
	safe := unsafeFilenameRe.ReplaceAllString(title, "_")
	if r := []rune(safe); len(r) > 80 {
		safe = string(r[:80])
	}
	name := now.Format("2006-01-02-15") + "-" + safe + ".csv"
	return filepath.Join(exportRoot, "individual_backups", name)
}

// WriteBackup stores the two-line CSV for one paper next to the merged file.
func WriteBackup(path string, rec Record) error {
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	defer f.Close()
	cw := csv.NewWriter(f)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	if err := cw.Write(rec); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
