package flowwire

import (
	"database/sql"

	"github.com/petrijr/flowwire/internal/persistence"
	"github.com/petrijr/flowwire/internal/taskqueue"
	"github.com/petrijr/flowwire/pkg/worker"
)

// WorkerBundle wires together an Executor, durable stores, a durable task
// queue, and a Worker that consumes tasks from that queue.
type WorkerBundle struct {
	Executor *Executor
	Store    persistence.Persistence
	Worker   *worker.Worker

	// queue is kept unexported; the public API enqueues through Worker.
	queue taskqueue.Queue
}

// NewSQLiteBundle constructs an Executor + stores + queue + Worker combo
// sharing the same SQLite database. Histories, activation records and queued
// tasks are persisted in the provided *sql.DB.
//
// Typical usage:
//
//	db, _ := sql.Open("sqlite", "file:flowwire.db?_journal=WAL")
//	bundle, err := flowwire.NewSQLiteBundle(db, flowwire.DefaultConfig())
//	// register workflows on bundle.Executor
//	// start runs via bundle.Worker
func NewSQLiteBundle(db *sql.DB, cfg Config) (*WorkerBundle, error) {
	store, err := persistence.NewSQLiteStore(db)
	if err != nil {
		return nil, err
	}

	q, err := taskqueue.NewSQLiteQueue(db)
	if err != nil {
		return nil, err
	}

	ex, err := NewExecutor(cfg)
	if err != nil {
		return nil, err
	}

	p := persistence.Persistence{History: store, Activations: store}
	w := worker.New(ex, p, q, worker.WithClock(cfg.Clock))

	return &WorkerBundle{
		Executor: ex,
		Store:    p,
		Worker:   w,
		queue:    q,
	}, nil
}

// Close releases the executor. The database is owned by the caller.
func (b *WorkerBundle) Close() {
	b.Executor.Close()
}
