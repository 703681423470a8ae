package flowwire

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/petrijr/flowwire/internal/persistence"
	"github.com/petrijr/flowwire/internal/taskqueue"
	"github.com/petrijr/flowwire/pkg/worker"
)

// LocalRunner bundles an Executor, an in-memory history and activation store,
// an in-memory task queue, and a Worker to provide a simple "local runner"
// for development and debugging.
//
// Typical usage:
//
//	runner, _ := flowwire.NewLocalRunner(flowwire.DefaultConfig())
//	flowwire.Workflow("greet", greet).MustRegister(runner.Executor)
//
//	_ = runner.StartWorkers(ctx, 2)
//	runID, _ := runner.StartRun(ctx, "greet", "bob")
//	...
//	runner.Stop()
type LocalRunner struct {
	// Executor runs activations.
	Executor *Executor

	// Store holds histories and activation records in memory.
	Store *persistence.InMemoryStore

	// Queue is the in-memory task queue used by the Worker.
	Queue taskqueue.Queue

	// Worker processes tasks from Queue using Executor.
	Worker *worker.Worker

	logger *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewLocalRunner constructs a LocalRunner from cfg.
//
// This is intended for local development, tests, and simple single-process
// deployments.
func NewLocalRunner(cfg Config) (*LocalRunner, error) {
	ex, err := NewExecutor(cfg)
	if err != nil {
		return nil, err
	}
	store := persistence.NewInMemoryStore()
	q := taskqueue.NewInMemoryQueue(1024)
	logger := slog.Default()
	w := worker.New(ex, persistence.Persistence{History: store, Activations: store}, q,
		worker.WithLogger(logger),
		worker.WithClock(cfg.Clock),
	)

	return &LocalRunner{
		Executor: ex,
		Store:    store,
		Queue:    q,
		Worker:   w,
		logger:   logger,
	}, nil
}

// StartWorkers starts 'concurrency' worker goroutines that process tasks
// until Stop is called.
//
// If StartWorkers is called more than once without Stop, it returns an error.
func (r *LocalRunner) StartWorkers(ctx context.Context, concurrency int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return errors.New("flowwire: LocalRunner already started")
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.running = true

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.Worker.Run(ctx, concurrency); err != nil {
			r.logger.Error("flowwire: local runner stopped", slog.Any("error", err))
		}
	}()
	return nil
}

// Stop cancels all worker goroutines started by StartWorkers and waits
// for them to exit.
func (r *LocalRunner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	cancel := r.cancel
	r.running = false
	r.cancel = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	r.wg.Wait()
}

// Close stops the workers and releases the executor.
func (r *LocalRunner) Close() {
	r.Stop()
	r.Executor.Close()
}

// StartRun enqueues the first activation of a new run of the latest version
// of workflow and returns its run ID.
func (r *LocalRunner) StartRun(ctx context.Context, workflow string, input any) (string, error) {
	return r.Worker.StartRun(ctx, workflow, "", input)
}

// Deliver appends history records to a run and enqueues its next activation.
// input must be the run's encoded input.
func (r *LocalRunner) Deliver(ctx context.Context, runID, workflow string, input, records []byte) error {
	if err := r.Store.AppendEvents(ctx, runID, records); err != nil {
		return err
	}
	return r.Worker.EnqueueActivation(ctx, Task{RunID: runID, Workflow: workflow, Input: input})
}

// Activations returns the recorded activations of a run.
func (r *LocalRunner) Activations(ctx context.Context, runID string) ([]ActivationRecord, error) {
	return r.Store.ListActivations(ctx, runID)
}
