package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	TriggerTypeStartup = "startup"
	TriggerTypeManual  = "manual"
	TriggerTypeWatcher = "watcher"
)

var (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusPartial = "partial"
)

const DefaultHistoryLimit = 10

const ingestionHistorySchema = `CREATE TABLE IF NOT EXISTS ingestion_history (
	id            BIGSERIAL PRIMARY KEY,
	load_id       TEXT NOT NULL DEFAULT '',
	data_dir      TEXT NOT NULL,
	trigger_type  TEXT NOT NULL,
	status        TEXT NOT NULL,
	files_loaded  INTEGER NOT NULL DEFAULT 0,
	skipped_files TEXT[] NOT NULL DEFAULT '{}',
	rows_loaded   INTEGER NOT NULL DEFAULT 0,
	error_message TEXT NOT NULL DEFAULT '',
	processed_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type IngestionHistoryStore struct {
	db *sqlx.DB
}

// EnsureSchema creates the ingestion_history table when it does not exist.
func (ih *IngestionHistoryStore) EnsureSchema(ctx context.Context) error {
	if _, err := ih.db.ExecContext(ctx, ingestionHistorySchema); err != nil {
		return fmt.Errorf("failed to create ingestion_history: %w", err)
	}
	return nil
}

func (ih *IngestionHistoryStore) InsertIngestionHistory(ctx context.Context, history *IngestionHistory) error {
	if history.SkippedFiles == nil {
		history.SkippedFiles = []string{}
	}
	query := `INSERT INTO ingestion_history (
		load_id,
		data_dir,
		trigger_type,
		status,
		files_loaded,
		skipped_files,
		rows_loaded,
		error_message
	) VALUES (
		:load_id,
		:data_dir,
		:trigger_type,
		:status,
		:files_loaded,
		:skipped_files,
		:rows_loaded,
		:error_message
	) RETURNING id, processed_at`

	rows, err := sqlx.NamedQueryContext(ctx, ih.db, query, history)
	if err != nil {
		return err
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&history.ID, &history.ProcessedAt); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (ih *IngestionHistoryStore) GetLatest(ctx context.Context, limit int) ([]IngestionHistory, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	query := `SELECT id, load_id, data_dir, trigger_type, status, files_loaded,
		skipped_files, rows_loaded, error_message, processed_at
	FROM ingestion_history
	ORDER BY processed_at DESC, id DESC
	LIMIT $1`

	history := []IngestionHistory{}
	if err := ih.db.SelectContext(ctx, &history, query, limit); err != nil {
		return nil, err
	}
	return history, nil
}

// MemoryIngestionHistoryStore keeps the history in process when no database
// is configured.
type MemoryIngestionHistoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	history []IngestionHistory
	now     func() time.Time
}

func (m *MemoryIngestionHistoryStore) InsertIngestionHistory(_ context.Context, history *IngestionHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	history.ID = m.nextID
	now := time.Now
	if m.now != nil {
		now = m.now
	}
	history.ProcessedAt = now().UTC()
	if history.SkippedFiles == nil {
		history.SkippedFiles = []string{}
	}

	stored := *history
	stored.SkippedFiles = slices.Clone(history.SkippedFiles)
	m.history = append(m.history, stored)
	return nil
}

// GetLatest returns up to limit records, newest first.
func (m *MemoryIngestionHistoryStore) GetLatest(_ context.Context, limit int) ([]IngestionHistory, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]IngestionHistory, 0, min(limit, len(m.history)))
	for i := len(m.history) - 1; i >= 0 && len(out) < limit; i-- {
		h := m.history[i]
		h.SkippedFiles = slices.Clone(h.SkippedFiles)
		out = append(out, h)
	}
	return out, nil
}
