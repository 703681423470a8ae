package persistence

import (
	"context"
	"database/sql"
)

// SQLiteStore is a HistoryStore and ActivationStore backed by SQLite.
//
// It expects an *sql.DB that uses a SQLite driver (for example,
// "modernc.org/sqlite"). The caller is responsible for importing
// the driver, e.g.:
//
//	import _ "modernc.org/sqlite"
type SQLiteStore struct {
	sqlStore
}

var (
	_ HistoryStore    = (*SQLiteStore)(nil)
	_ ActivationStore = (*SQLiteStore)(nil)
)

// NewSQLiteStore initializes the required schema in the given
// database and returns a new SQLiteStore.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{sqlStore{db: db, rebind: sqliteBind}}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS history_chunks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			records BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_history_chunks_run ON history_chunks(run_id, id);

		CREATE TABLE IF NOT EXISTS activations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			workflow TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			output BLOB,
			commands BLOB,
			history_size INTEGER NOT NULL,
			replayed INTEGER NOT NULL,
			recorded_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_activations_run ON activations(run_id, id);
	`)
	return err
}

func (s *SQLiteStore) AppendEvents(ctx context.Context, runID string, records []byte) error {
	return s.appendEvents(ctx, runID, records)
}

func (s *SQLiteStore) LoadHistory(ctx context.Context, runID string) ([]byte, error) {
	return s.loadHistory(ctx, runID)
}

func (s *SQLiteStore) SaveActivation(ctx context.Context, rec ActivationRecord) error {
	return s.saveActivation(ctx, rec)
}

func (s *SQLiteStore) ListActivations(ctx context.Context, runID string) ([]ActivationRecord, error) {
	return s.listActivations(ctx, runID)
}
