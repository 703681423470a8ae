// Package taskqueue carries activation requests from whoever appends history
// (an orchestrator, a timer service, a client starting a run) to workers that
// replay the run.
package taskqueue

import (
	"context"
	"time"
)

// Task asks a worker to activate one workflow run against its stored
// history.
type Task struct {
	ID string

	RunID    string
	Workflow string
	// Version selects a registered workflow version; empty means latest.
	Version string

	// Input is the codec-encoded workflow input. It is identical on every
	// activation of a run.
	Input []byte

	// Seed overrides the run's random seed. Zero derives it from RunID.
	Seed int64

	EnqueuedAt time.Time

	// NotBefore is the earliest time this task should be eligible
	// for processing. Zero value means "immediately" (i.e., at enqueue time).
	NotBefore time.Time
}

// Queue is a simple async task queue interface.
type Queue interface {
	// Enqueue adds a task to the queue. It should respect ctx for cancellation.
	Enqueue(ctx context.Context, t Task) error

	// Dequeue removes and returns the next task, blocking until one is available
	// or the context is cancelled.
	Dequeue(ctx context.Context) (*Task, error)

	// Len returns the approximate number of tasks queued.
	Len() int
}

const defaultPollInterval = 20 * time.Millisecond

// newStoppedTimer returns a timer that can be Reset before each idle poll.
func newStoppedTimer() *time.Timer {
	tmr := time.NewTimer(0)
	if !tmr.Stop() {
		select {
		case <-tmr.C:
		default:
		}
	}
	return tmr
}

// sleep waits d on tmr or returns ctx.Err().
func sleep(ctx context.Context, tmr *time.Timer, d time.Duration) error {
	tmr.Reset(d)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-tmr.C:
		return nil
	}
}
