// Package api contains the types shared by the flowwire execution core and
// its hosts: the workflow context surface seen by workflow code, the command
// queue produced by an activation, execution results, event types of the
// binary history format, and observability hooks.
//
// Most users interact with the higher-level flowwire package, which
// re-exports the commonly used names from here. The api package is intended
// for hosts that embed the executor, custom codecs and custom observers.
//
// # Activations
//
// A workflow never blocks waiting for the outside world. Each activation
// replays the recorded history from the beginning: operations whose outcome
// is already recorded resolve immediately, and the first operation without a
// recorded outcome appends a Command and suspends the workflow. The host's
// orchestrator carries out the commands, appends the outcomes to history and
// triggers the next activation.
//
// # Determinism
//
// Workflow code must take time, identifiers and randomness from its
// WorkflowContext only. The context clock is fixed per activation and the
// random stream is seeded per run, so every replay observes the same values.
//
// # Observability
//
// Observer receives a callback when an activation starts and when it
// finishes. LoggingObserver, BasicMetrics and NewCompositeObserver cover the
// common cases.
package api
