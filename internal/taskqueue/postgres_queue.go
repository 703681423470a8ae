package taskqueue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// PostgresQueue implements Queue using a PostgreSQL table.
//
// Schema (created automatically if missing):
//
//	CREATE TABLE IF NOT EXISTS queue_tasks (
//	    id          BIGSERIAL PRIMARY KEY,
//	    run_id      TEXT NOT NULL,
//	    not_before  TIMESTAMPTZ NOT NULL,
//	    payload     BYTEA NOT NULL
//	);
//
// Rows are claimed with SELECT ... FOR UPDATE SKIP LOCKED, so several workers
// can poll the same table.
type PostgresQueue struct {
	db           *sql.DB
	pollInterval time.Duration
}

// NewPostgresQueue creates the required schema if needed and returns a Queue.
func NewPostgresQueue(db *sql.DB) (*PostgresQueue, error) {
	q := &PostgresQueue{db: db, pollInterval: 100 * time.Millisecond}
	if err := q.initSchema(); err != nil {
		return nil, err
	}
	return q, nil
}

// Ensure PostgresQueue implements Queue.
var _ Queue = (*PostgresQueue)(nil)

func (q *PostgresQueue) initSchema() error {
	_, err := q.db.Exec(`
		CREATE TABLE IF NOT EXISTS queue_tasks (
			id         BIGSERIAL PRIMARY KEY,
			run_id     TEXT NOT NULL,
			not_before TIMESTAMPTZ NOT NULL,
			payload    BYTEA NOT NULL
		)
	`)
	return err
}

// Enqueue inserts a task into the queue.
func (q *PostgresQueue) Enqueue(ctx context.Context, t Task) error {
	if t.EnqueuedAt.IsZero() {
		t.EnqueuedAt = time.Now()
	}
	if t.NotBefore.IsZero() {
		t.NotBefore = t.EnqueuedAt
	}

	data, err := EncodeTask(t)
	if err != nil {
		return err
	}

	_, err = q.db.ExecContext(ctx, `
		INSERT INTO queue_tasks (run_id, not_before, payload)
		VALUES ($1, $2, $3)
	`, t.RunID, t.NotBefore.UTC(), data)
	return err
}

// Dequeue blocks (with polling) until a task is available or ctx is cancelled.
func (q *PostgresQueue) Dequeue(ctx context.Context) (*Task, error) {
	tmr := newStoppedTimer()
	defer tmr.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		id, payload, err := q.claim(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			if err := sleep(ctx, tmr, q.pollInterval); err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, err
		}

		task, err := DecodeTask(payload)
		if err != nil {
			return nil, fmt.Errorf("decode task %d: %w", id, err)
		}
		return task, nil
	}
}

func (q *PostgresQueue) claim(ctx context.Context) (int64, []byte, error) {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, err
	}

	var (
		id      int64
		payload []byte
	)
	// Lock a single eligible row, if any.
	err = tx.QueryRowContext(ctx, `
		SELECT id, payload
		FROM queue_tasks
		WHERE not_before <= now()
		ORDER BY not_before, id
		FOR UPDATE SKIP LOCKED
		LIMIT 1
	`).Scan(&id, &payload)
	if err != nil {
		_ = tx.Rollback()
		return 0, nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM queue_tasks WHERE id = $1`, id); err != nil {
		_ = tx.Rollback()
		return 0, nil, err
	}
	if err := tx.Commit(); err != nil {
		return 0, nil, err
	}
	return id, payload, nil
}

// Len returns an approximate number of queued tasks.
func (q *PostgresQueue) Len() int {
	var n int
	if err := q.db.QueryRow(`SELECT COUNT(*) FROM queue_tasks`).Scan(&n); err != nil {
		slog.Warn("postgres queue: len failed", slog.Any("error", err))
		return 0
	}
	return n
}
