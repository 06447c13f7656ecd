package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Storage struct {
	IngestionHistory interface {
		InsertIngestionHistory(ctx context.Context, history *IngestionHistory) error
		GetLatest(ctx context.Context, limit int) ([]IngestionHistory, error)
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		IngestionHistory: &IngestionHistoryStore{db: db},
	}
}

// NewMemoryStorage backs every store with process memory.
func NewMemoryStorage() *Storage {
	return &Storage{
		IngestionHistory: &MemoryIngestionHistoryStore{},
	}
}

// Migrate creates the tables the Postgres stores need.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	return (&IngestionHistoryStore{db: db}).EnsureSchema(ctx)
}
