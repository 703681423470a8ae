package persistence

import (
	"context"
	"database/sql"
)

// PostgresStore is a HistoryStore and ActivationStore backed by PostgreSQL.
//
// It expects an *sql.DB that uses a PostgreSQL driver (for example,
// "github.com/jackc/pgx/v5/stdlib").
//
// The caller is responsible for:
//   - importing the driver for its side effects, e.g.:
//     _ "github.com/jackc/pgx/v5/stdlib"
//   - providing a DSN via sql.Open.
type PostgresStore struct {
	sqlStore
}

var (
	_ HistoryStore    = (*PostgresStore)(nil)
	_ ActivationStore = (*PostgresStore)(nil)
)

// NewPostgresStore initializes the required schema in the given
// database and returns a new PostgresStore.
func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	s := &PostgresStore{sqlStore{db: db, rebind: postgresBind}}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS history_chunks (
			id BIGSERIAL PRIMARY KEY,
			run_id TEXT NOT NULL,
			records BYTEA NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_chunks_run ON history_chunks(run_id, id)`,
		`CREATE TABLE IF NOT EXISTS activations (
			id BIGSERIAL PRIMARY KEY,
			run_id TEXT NOT NULL,
			workflow TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			output BYTEA,
			commands BYTEA,
			history_size INTEGER NOT NULL,
			replayed INTEGER NOT NULL,
			recorded_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activations_run ON activations(run_id, id)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) AppendEvents(ctx context.Context, runID string, records []byte) error {
	return s.appendEvents(ctx, runID, records)
}

func (s *PostgresStore) LoadHistory(ctx context.Context, runID string) ([]byte, error) {
	return s.loadHistory(ctx, runID)
}

func (s *PostgresStore) SaveActivation(ctx context.Context, rec ActivationRecord) error {
	return s.saveActivation(ctx, rec)
}

func (s *PostgresStore) ListActivations(ctx context.Context, runID string) ([]ActivationRecord, error) {
	return s.listActivations(ctx, runID)
}
