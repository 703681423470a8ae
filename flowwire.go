package flowwire

import (
	"github.com/petrijr/flowwire/internal/engine"
	"github.com/petrijr/flowwire/internal/persistence"
	"github.com/petrijr/flowwire/internal/taskqueue"
	"github.com/petrijr/flowwire/pkg/api"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	WorkflowContext      = api.WorkflowContext
	WorkflowDefinition   = api.WorkflowDefinition
	WorkflowFunc         = api.WorkflowFunc
	ActivityDefinition   = api.ActivityDefinition
	ActivityOptions      = api.ActivityOptions
	RetryPolicy          = api.RetryPolicy
	Random               = api.Random
	Codec                = api.Codec
	Command              = api.Command
	CommandQueue         = api.CommandQueue
	EventType            = api.EventType
	ExecutionResult      = api.ExecutionResult
	Status               = api.Status
	Outcome              = api.Outcome
	Resolution           = api.Resolution
	SuspendedError       = api.SuspendedError
	ContinueAsNewError   = api.ContinueAsNewError
	ActivationInfo       = api.ActivationInfo
	Observer             = api.Observer
	LoggingObserver      = api.LoggingObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot
	CompositeObserver    = api.CompositeObserver
	NoopObserver         = api.NoopObserver

	// Executor runs workflow activations.
	Executor = engine.Executor
	// Request describes one activation.
	Request = engine.Request
	// RunFunc is a workflow body bound to its input.
	RunFunc = engine.RunFunc

	// Task asks a worker to activate a run.
	Task = taskqueue.Task
	// ActivationRecord is the stored outcome of one activation.
	ActivationRecord = persistence.ActivationRecord
	// CommandRecord is a stored command with its payload.
	CommandRecord   = persistence.CommandRecord
	HistoryStore    = persistence.HistoryStore
	ActivationStore = persistence.ActivationStore
)

// Re-export common observer helpers.

var (
	NewLoggingObserver   = api.NewLoggingObserver
	NewCompositeObserver = api.NewCompositeObserver
	DefaultRetryPolicy   = api.DefaultRetryPolicy
)

// Re-export status and outcome values for convenience.

const (
	StatusCompleted      = api.StatusCompleted
	StatusSuspended      = api.StatusSuspended
	StatusFailed         = api.StatusFailed
	StatusContinuedAsNew = api.StatusContinuedAsNew

	OutcomeReplayed  = api.OutcomeReplayed
	OutcomeScheduled = api.OutcomeScheduled
	OutcomeCancelled = api.OutcomeCancelled

	EventActivityScheduled = api.EventActivityScheduled
	EventActivityCompleted = api.EventActivityCompleted
	EventActivityFailed    = api.EventActivityFailed
	EventActivityTimedOut  = api.EventActivityTimedOut
	EventTimerStarted      = api.EventTimerStarted
	EventTimerFired        = api.EventTimerFired
)

// Re-export sentinel errors.

var (
	ErrInvalidContext   = api.ErrInvalidContext
	ErrSuspended        = api.ErrSuspended
	ErrCancelled        = api.ErrCancelled
	ErrUnknownActivity  = api.ErrUnknownActivity
	ErrWorkflowNotFound = api.ErrWorkflowNotFound
	ErrRunNotFound      = persistence.ErrRunNotFound
)

// NewExecutor builds an Executor from cfg.
func NewExecutor(cfg Config) (*Executor, error) {
	ecfg, err := cfg.engineConfig()
	if err != nil {
		return nil, err
	}
	return engine.NewExecutor(ecfg)
}

// IsSuspended reports whether err asks the activation to end as Suspended.
func IsSuspended(err error) bool {
	return api.IsSuspended(err)
}

// IsCancelled reports whether err stems from activation cancellation.
func IsCancelled(err error) bool {
	return api.IsCancelled(err)
}

// ContinueAsNew returns the error a workflow returns to finish its run and
// ask the host to start a fresh one with input.
func ContinueAsNew(input any) error {
	return api.NewContinueAsNewError(input)
}
