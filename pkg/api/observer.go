package api

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// ActivationInfo identifies an activation for observers.
type ActivationInfo struct {
	RunID        string
	Workflow     string
	HistoryBytes int
	Seed         int64
	StartedAt    time.Time
}

// Observer receives callbacks from the executor for logging and metrics.
//
// Implementations should be fast and non-blocking; heavy work should be done
// asynchronously so as not to delay activations.
type Observer interface {
	// OnActivationStart is called after the context is initialized and
	// before the workflow body runs.
	OnActivationStart(ctx context.Context, info *ActivationInfo)

	// OnActivationFinished is called once per activation with the final
	// result, whatever its status.
	OnActivationFinished(ctx context.Context, info *ActivationInfo, res *ExecutionResult)
}

// NoopObserver is an Observer that does nothing.
// It is used as the default when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnActivationStart(ctx context.Context, info *ActivationInfo) {}
func (NoopObserver) OnActivationFinished(ctx context.Context, info *ActivationInfo, res *ExecutionResult) {
}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnActivationStart(ctx context.Context, info *ActivationInfo) {
	for _, o := range c.observers {
		o.OnActivationStart(ctx, info)
	}
}

func (c *CompositeObserver) OnActivationFinished(ctx context.Context, info *ActivationInfo, res *ExecutionResult) {
	for _, o := range c.observers {
		o.OnActivationFinished(ctx, info, res)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs activation lifecycle
// events using the provided slog.Logger. If logger is nil, slog.Default()
// is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnActivationStart(ctx context.Context, info *ActivationInfo) {
	o.Logger.DebugContext(ctx, "activation_start",
		slog.String("workflow", info.Workflow),
		slog.String("run_id", info.RunID),
		slog.Int("history_bytes", info.HistoryBytes),
	)
}

func (o *LoggingObserver) OnActivationFinished(ctx context.Context, info *ActivationInfo, res *ExecutionResult) {
	level := slog.LevelInfo
	switch res.Status {
	case StatusSuspended:
		level = slog.LevelDebug
	case StatusFailed:
		level = slog.LevelError
	}
	attrs := []slog.Attr{
		slog.String("workflow", info.Workflow),
		slog.String("run_id", info.RunID),
		slog.String("status", string(res.Status)),
		slog.Int("commands", res.Commands.Len()),
		slog.Int("replayed", res.Replayed),
		slog.Duration("duration", res.Duration),
	}
	if res.Err != nil {
		attrs = append(attrs, slog.Any("error", res.Err))
	}
	o.Logger.LogAttrs(ctx, level, "activation_finished", attrs...)
}

// BasicMetrics collects simple counters and aggregate activation durations.
// It implements Observer, and can be combined with LoggingObserver via
// NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	activationsStarted atomic.Int64
	completed          atomic.Int64
	suspended          atomic.Int64
	failed             atomic.Int64
	continuedAsNew     atomic.Int64
	commandsEmitted    atomic.Int64
	eventsReplayed     atomic.Int64
	totalDuration      atomic.Int64 // nanoseconds
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	ActivationsStarted int64
	Completed          int64
	Suspended          int64
	Failed             int64
	ContinuedAsNew     int64
	InFlight           int64

	CommandsEmitted       int64
	EventsReplayed        int64
	AvgActivationDuration time.Duration
}

func (m *BasicMetrics) OnActivationStart(ctx context.Context, info *ActivationInfo) {
	m.activationsStarted.Add(1)
}

func (m *BasicMetrics) OnActivationFinished(ctx context.Context, info *ActivationInfo, res *ExecutionResult) {
	switch res.Status {
	case StatusCompleted:
		m.completed.Add(1)
	case StatusSuspended:
		m.suspended.Add(1)
	case StatusFailed:
		m.failed.Add(1)
	case StatusContinuedAsNew:
		m.continuedAsNew.Add(1)
	}
	m.commandsEmitted.Add(int64(res.Commands.Len()))
	m.eventsReplayed.Add(int64(res.Replayed))
	m.totalDuration.Add(res.Duration.Nanoseconds())
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	started := m.activationsStarted.Load()
	completed := m.completed.Load()
	suspended := m.suspended.Load()
	failed := m.failed.Load()
	continued := m.continuedAsNew.Load()
	finished := completed + suspended + failed + continued

	var avg time.Duration
	if finished > 0 {
		avg = time.Duration(m.totalDuration.Load() / finished)
	}

	return BasicMetricsSnapshot{
		ActivationsStarted:    started,
		Completed:             completed,
		Suspended:             suspended,
		Failed:                failed,
		ContinuedAsNew:        continued,
		InFlight:              started - finished,
		CommandsEmitted:       m.commandsEmitted.Load(),
		EventsReplayed:        m.eventsReplayed.Load(),
		AvgActivationDuration: avg,
	}
}
