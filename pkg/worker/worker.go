package worker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/petrijr/flowwire/internal/engine"
	"github.com/petrijr/flowwire/internal/persistence"
	"github.com/petrijr/flowwire/internal/taskqueue"
	"github.com/petrijr/flowwire/pkg/api"
)

const idleBackoff = 100 * time.Millisecond

// Executor runs one activation of a registered workflow.
type Executor interface {
	Execute(ctx context.Context, req engine.Request) (*api.ExecutionResult, error)
	Codec() api.Codec
}

// Worker pulls tasks from a Queue and activates the runs they name.
type Worker struct {
	exec   Executor
	store  persistence.Persistence
	queue  taskqueue.Queue
	logger *slog.Logger
	clock  func() time.Time
}

// Option configures a Worker.
type Option func(*Worker)

// WithLogger sets the logger used for activation outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(w *Worker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithClock sets the clock used to stamp activation records.
func WithClock(now func() time.Time) Option {
	return func(w *Worker) {
		if now != nil {
			w.clock = now
		}
	}
}

// New creates a new Worker.
func New(exec Executor, store persistence.Persistence, queue taskqueue.Queue, opts ...Option) *Worker {
	w := &Worker{
		exec:   exec,
		store:  store,
		queue:  queue,
		logger: slog.Default(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// StartRun allocates a run ID and enqueues the run's first activation.
// input is encoded with the executor's codec.
func (w *Worker) StartRun(ctx context.Context, workflow, version string, input any) (string, error) {
	data, err := w.encode(input)
	if err != nil {
		return "", fmt.Errorf("encode input of workflow %q: %w", workflow, err)
	}
	runID := uuid.NewString()
	err = w.EnqueueActivation(ctx, taskqueue.Task{
		RunID:    runID,
		Workflow: workflow,
		Version:  version,
		Input:    data,
	})
	if err != nil {
		return "", err
	}
	return runID, nil
}

// EnqueueActivation enqueues a task to activate a run. Hosts call it after
// appending history events for the run.
func (w *Worker) EnqueueActivation(ctx context.Context, t taskqueue.Task) error {
	if t.RunID == "" {
		return errors.New("activation task has no run ID")
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.EnqueuedAt.IsZero() {
		t.EnqueuedAt = w.clock()
	}
	return w.queue.Enqueue(ctx, t)
}

// ProcessOne pulls a single task from the queue and processes it.
// Returns (processed, error):
//   - processed == false: no task was obtained; err is the dequeue error.
//   - processed == true: a task was processed; err reports host-side failures
//     (history load, executor, persistence). A workflow that fails is
//     recorded, not returned as an error.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	task, err := w.queue.Dequeue(ctx)
	if err != nil {
		return false, err
	}
	if task == nil {
		return false, nil
	}
	return true, w.activate(ctx, task)
}

func (w *Worker) activate(ctx context.Context, task *taskqueue.Task) error {
	hist, err := w.store.History.LoadHistory(ctx, task.RunID)
	if err != nil && !errors.Is(err, persistence.ErrRunNotFound) {
		return fmt.Errorf("load history of run %q: %w", task.RunID, err)
	}

	res, err := w.exec.Execute(ctx, engine.Request{
		RunID:    task.RunID,
		Workflow: task.Workflow,
		Version:  task.Version,
		History:  hist,
		Input:    task.Input,
		Seed:     task.Seed,
	})
	if err != nil {
		return fmt.Errorf("activate run %q: %w", task.RunID, err)
	}

	var output []byte
	if res.Status == api.StatusCompleted || res.Status == api.StatusContinuedAsNew {
		if output, err = w.encode(res.Output); err != nil {
			return fmt.Errorf("encode output of run %q: %w", task.RunID, err)
		}
	}

	rec := persistence.NewActivationRecord(task.Workflow, len(hist), res, output, w.clock())
	if err := w.store.Activations.SaveActivation(ctx, rec); err != nil {
		return fmt.Errorf("save activation of run %q: %w", task.RunID, err)
	}

	w.log(ctx, task, res)

	if res.Status == api.StatusContinuedAsNew {
		next := taskqueue.Task{
			RunID:    uuid.NewString(),
			Workflow: task.Workflow,
			Version:  task.Version,
			Input:    output,
		}
		if err := w.EnqueueActivation(ctx, next); err != nil {
			return fmt.Errorf("continue run %q as new: %w", task.RunID, err)
		}
		w.logger.LogAttrs(ctx, slog.LevelInfo, "workflow continued as new",
			slog.String("run_id", task.RunID),
			slog.String("next_run_id", next.RunID),
		)
	}
	return nil
}

func (w *Worker) log(ctx context.Context, task *taskqueue.Task, res *api.ExecutionResult) {
	attrs := []slog.Attr{
		slog.String("run_id", task.RunID),
		slog.String("workflow", task.Workflow),
		slog.String("status", string(res.Status)),
		slog.Int("commands", res.Commands.Len()),
		slog.Int("replayed", res.Replayed),
	}
	if res.Status == api.StatusFailed {
		attrs = append(attrs, slog.Any("error", res.Err))
		w.logger.LogAttrs(ctx, slog.LevelError, "workflow activation failed", attrs...)
		return
	}
	w.logger.LogAttrs(ctx, slog.LevelDebug, "workflow activation recorded", attrs...)
}

func (w *Worker) encode(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := w.exec.Codec().Encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run processes tasks with the given number of goroutines until ctx is
// cancelled. Host-side errors are logged and do not stop the loop.
func (w *Worker) Run(ctx context.Context, concurrency int) error {
	if concurrency <= 0 {
		concurrency = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	for range concurrency {
		g.Go(func() error {
			for {
				processed, err := w.ProcessOne(ctx)
				if ctx.Err() != nil {
					return nil
				}
				if err == nil {
					continue
				}
				w.logger.LogAttrs(ctx, slog.LevelError, "worker task failed",
					slog.Bool("processed", processed),
					slog.Any("error", err),
				)
				if !processed {
					// Queue backend trouble: back off before polling again.
					select {
					case <-ctx.Done():
						return nil
					case <-time.After(idleBackoff):
					}
				}
			}
		})
	}
	return g.Wait()
}
