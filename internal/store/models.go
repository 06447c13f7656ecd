package store

import (
	"time"

	"github.com/lib/pq"
)

// IngestionHistory represents the 'ingestion_history' table. One row is
// written per dataset load attempt.
type IngestionHistory struct {
	ID           int64          `db:"id" json:"id"`
	LoadID       string         `db:"load_id" json:"load_id"`
	DataDir      string         `db:"data_dir" json:"data_dir"`
	TriggerType  string         `db:"trigger_type" json:"trigger_type"`
	Status       string         `db:"status" json:"status"`
	FilesLoaded  int            `db:"files_loaded" json:"files_loaded"`
	SkippedFiles pq.StringArray `db:"skipped_files" json:"skipped_files"`
	RowsLoaded   int            `db:"rows_loaded" json:"rows_loaded"`
	ErrorMessage string         `db:"error_message" json:"error_message,omitempty"`
	ProcessedAt  time.Time      `db:"processed_at" json:"processed_at"`
}
